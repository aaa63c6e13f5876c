package service

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"go.uber.org/zap"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

const (
	DigestSubject = "Your Daily Task Summary"
	// DigestEarliestHour gates summaries so they describe most of the day.
	DigestEarliestHour = 12
	digestDayLayout    = "2006-01-02"
	digestDisplayDate  = "02/01/2006"
)

var digestTemplate = template.Must(template.New("digest").Parse(`Hi {{.Name}},

Daily Task Summary for {{.Date}}:

Completed Today: {{.Completed}}
Pending Today: {{.Pending}}

Today's Checklist:
{{range .Today}}{{if .CompletedDate}}[x]{{else}}[ ]{{end}} {{.TaskName}}
{{else}}No tasks scheduled for today.
{{end}}
Overdue Tasks:
{{range .Overdue}}! {{.TaskName}} (Due: {{.DueDate.Format "02/01/2006"}})
{{else}}None
{{end}}
Tasks for Tomorrow:
{{range .Tomorrow}}- {{.TaskName}} ({{.TaskFrequency}})
{{else}}None planned yet.
{{end}}
Keep up the good work!

Regards,
TaskEase
`))

type digestData struct {
	Name      string
	Date      string
	Completed int
	Pending   int
	Today     []domain.Task
	Overdue   []domain.Task
	Tomorrow  []domain.Task
}

type DigestService struct {
	userRepository   ports.UserRepository
	taskRepository   ports.TaskRepository
	statusRepository ports.SummaryStatusRepository
	mailer           ports.MailSender
}

func NewDigestService(
	userRepository ports.UserRepository,
	taskRepository ports.TaskRepository,
	statusRepository ports.SummaryStatusRepository,
	mailer ports.MailSender,
) *DigestService {
	return &DigestService{
		userRepository:   userRepository,
		taskRepository:   taskRepository,
		statusRepository: statusRepository,
		mailer:           mailer,
	}
}

// SendDailySummaries mails each user one summary per calendar day of now's
// location. Nothing is sent before DigestEarliestHour.
func (s *DigestService) SendDailySummaries(ctx context.Context, now time.Time) (ports.DigestReport, error) {
	var report ports.DigestReport

	if now.Hour() < DigestEarliestHour {
		zap.L().Info("too early for daily summaries, skipping", zap.Time("now", now))
		return report, nil
	}

	users, err := s.userRepository.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list users: %w", err)
	}

	day := now.Format(digestDayLayout)
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Users++

		sent, err := s.sendSummary(ctx, user, day, now)
		switch {
		case err != nil:
			report.Failed++
			zap.L().Error("failed to send daily summary", zap.String("email", user.Email), zap.Error(err))
		case !sent:
			report.Skipped++
		default:
			report.Sent++
		}
	}

	return report, nil
}

func (s *DigestService) sendSummary(ctx context.Context, user domain.User, day string, now time.Time) (bool, error) {
	alreadySent, err := s.statusRepository.HasSent(ctx, user.Email, day)
	if err != nil {
		return false, fmt.Errorf("check summary status: %w", err)
	}
	if alreadySent {
		return false, nil
	}

	body, err := s.BuildSummary(ctx, user, now)
	if err != nil {
		return false, err
	}

	if err := s.mailer.Send(ctx, user.Email, DigestSubject, body); err != nil {
		return false, fmt.Errorf("send mail: %w", err)
	}

	if err := s.statusRepository.MarkSent(ctx, user.Email, day); err != nil {
		return false, fmt.Errorf("mark summary sent: %w", err)
	}
	return true, nil
}

// BuildSummary renders the plain-text summary for user as of now.
func (s *DigestService) BuildSummary(ctx context.Context, user domain.User, now time.Time) (string, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfTomorrow := startOfDay.AddDate(0, 0, 1)
	endOfTomorrow := startOfDay.AddDate(0, 0, 2)

	today, err := s.taskRepository.ListDueBetween(ctx, user.Email, startOfDay, startOfTomorrow)
	if err != nil {
		return "", fmt.Errorf("list today's tasks: %w", err)
	}

	overdue, err := s.taskRepository.ListOverdue(ctx, user.Email, startOfDay)
	if err != nil {
		return "", fmt.Errorf("list overdue tasks: %w", err)
	}

	tomorrow, err := s.taskRepository.ListDueBetween(ctx, user.Email, startOfTomorrow, endOfTomorrow)
	if err != nil {
		return "", fmt.Errorf("list tomorrow's tasks: %w", err)
	}

	assigned, err := s.taskRepository.ListByAssignee(ctx, user.Email)
	if err != nil {
		return "", fmt.Errorf("list assigned tasks: %w", err)
	}
	tomorrow = appendPendingRecurring(tomorrow, assigned)

	data := digestData{
		Name:     user.Username,
		Date:     now.Format(digestDisplayDate),
		Today:    today,
		Overdue:  overdue,
		Tomorrow: tomorrow,
	}
	if data.Name == "" {
		data.Name = user.Email
	}
	for _, task := range today {
		if task.IsPending() {
			data.Pending++
		} else {
			data.Completed++
		}
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return buf.String(), nil
}

// appendPendingRecurring adds recurring tasks still open. Completed instances
// are history; their successors are listed instead.
func appendPendingRecurring(tasks, candidates []domain.Task) []domain.Task {
	seen := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		seen[task.ID] = struct{}{}
	}
	for _, task := range candidates {
		if !task.IsRecurring() || !task.IsPending() {
			continue
		}
		if _, ok := seen[task.ID]; ok {
			continue
		}
		seen[task.ID] = struct{}{}
		tasks = append(tasks, task)
	}
	return tasks
}

var _ ports.DigestService = (*DigestService)(nil)
