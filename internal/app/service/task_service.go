package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	userRepository ports.UserRepository
	recurrence     ports.Recurrence
	notifier       ports.Notifier
	now            Clock
}

func NewTaskService(
	taskRepository ports.TaskRepository,
	userRepository ports.UserRepository,
	recurrence ports.Recurrence,
	notifier ports.Notifier,
) *TaskService {
	return &TaskService{
		taskRepository: taskRepository,
		userRepository: userRepository,
		recurrence:     recurrence,
		notifier:       notifier,
		now:            time.Now,
	}
}

func (s *TaskService) WithClock(now Clock) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	assignee, err := s.userRepository.GetByEmail(ctx, domain.NormalizeEmail(input.AssignedTo))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Task{}, domain.ErrAssigneeNotRegistered
		}
		return domain.Task{}, fmt.Errorf("find assignee: %w", err)
	}

	now := s.now()
	frequency := input.TaskFrequency
	if frequency == "" {
		frequency = domain.FrequencyOneTime
	}
	dueDate := now
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}
	assignedName := strings.TrimSpace(input.AssignedName)
	if assignedName == "" {
		assignedName = assignee.Username
	}

	task, err := s.taskRepository.Create(ctx, domain.Task{
		CreatedBy:       domain.NormalizeEmail(input.CreatedBy),
		TaskName:        input.TaskName,
		TaskDescription: input.TaskDescription,
		AssignedTo:      assignee.Email,
		AssignedName:    assignedName,
		TaskFrequency:   frequency,
		DueDate:         dueDate,
		Priority:        input.Priority,
		CreatedAt:       now,
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	if err := s.userRepository.AdjustCounters(ctx, assignee.Email, domain.DeltaTaskAssigned); err != nil {
		return task, fmt.Errorf("update counters of %s: %w", assignee.Email, err)
	}

	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return s.taskRepository.GetByID(ctx, id)
}

func (s *TaskService) ListAssignedTo(ctx context.Context, email string) ([]domain.Task, error) {
	return s.taskRepository.ListByAssignee(ctx, domain.NormalizeEmail(email))
}

func (s *TaskService) ListCreatedBy(ctx context.Context, email string) ([]domain.Task, error) {
	return s.taskRepository.ListByCreator(ctx, domain.NormalizeEmail(email))
}

// CompleteTask marks the caller's pending task as completed and, for recurring
// tasks, regenerates the next occurrence. A completed task is never rolled back
// when a later step fails.
func (s *TaskService) CompleteTask(ctx context.Context, id, assignee string) (domain.CompletionResult, error) {
	assignee = domain.NormalizeEmail(assignee)
	completedAt := s.now()

	task, err := s.taskRepository.CompletePending(ctx, id, assignee, completedAt)
	if err != nil {
		return domain.CompletionResult{}, err
	}
	result := domain.CompletionResult{Completed: task}

	if err := s.userRepository.AdjustCounters(ctx, assignee, domain.DeltaTaskCompleted); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return result, fmt.Errorf("update counters of %s: %w", assignee, err)
		}
		zap.L().Warn("assignee of completed task not found", zap.String("email", assignee))
	}

	if next, ok := domain.NextDueDate(completedAt, task.TaskFrequency); ok {
		generated, err := s.recurrence.SpawnSuccessor(ctx, task, next)
		if err != nil {
			return result, err
		}
		result.Generated = generated
	}

	name := s.displayName(ctx, assignee, task.AssignedName)
	s.notify(ctx, fmt.Sprintf("%s has completed task: \"%s\"", name, task.TaskName))

	return result, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.taskRepository.Delete(ctx, task.ID); err != nil {
		return err
	}

	if err := s.userRepository.AdjustCounters(ctx, task.AssignedTo, domain.DeletionDelta(task)); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("update counters of %s: %w", task.AssignedTo, err)
		}
		zap.L().Warn("assignee of deleted task not found", zap.String("email", task.AssignedTo))
	}

	name := s.displayName(ctx, task.AssignedTo, task.AssignedName)
	s.notify(ctx, fmt.Sprintf("%s has deleted the task: \"%s\"", name, task.TaskName))

	return nil
}

func (s *TaskService) displayName(ctx context.Context, email, fallback string) string {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err == nil && user.Username != "" {
		return user.Username
	}
	if fallback != "" {
		return fallback
	}
	return email
}

func (s *TaskService) notify(ctx context.Context, text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, text); err != nil {
		zap.L().Warn("failed to emit notification", zap.String("text", text), zap.Error(err))
	}
}

var _ ports.TaskService = (*TaskService)(nil)
