package service_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

type memoryTasks struct {
	mu               sync.Mutex
	seq              int
	tasks            map[string]domain.Task
	findSuccessorErr map[string]error
}

func newMemoryTasks(tasks ...domain.Task) *memoryTasks {
	m := &memoryTasks{tasks: map[string]domain.Task{}, findSuccessorErr: map[string]error{}}
	for _, task := range tasks {
		if task.ID == "" {
			m.seq++
			task.ID = fmt.Sprintf("task-%d", m.seq)
		}
		m.tasks[task.ID] = task
	}
	return m
}

func (m *memoryTasks) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if task.SourceTaskID != nil {
		for _, existing := range m.tasks {
			if existing.SourceTaskID != nil && *existing.SourceTaskID == *task.SourceTaskID {
				return domain.Task{}, domain.ErrSuccessorExists
			}
		}
	}
	m.seq++
	task.ID = fmt.Sprintf("task-%d", m.seq)
	m.tasks[task.ID] = task
	return task, nil
}

func (m *memoryTasks) GetByID(_ context.Context, id string) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (m *memoryTasks) filter(keep func(domain.Task) bool) []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Task
	for _, task := range m.tasks {
		if keep(task) {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryTasks) ListByAssignee(_ context.Context, email string) ([]domain.Task, error) {
	return m.filter(func(t domain.Task) bool { return t.AssignedTo == email }), nil
}

func (m *memoryTasks) ListByCreator(_ context.Context, email string) ([]domain.Task, error) {
	return m.filter(func(t domain.Task) bool { return t.CreatedBy == email }), nil
}

func (m *memoryTasks) ListRecurring(_ context.Context) ([]domain.Task, error) {
	return m.filter(domain.Task.IsRecurring), nil
}

func (m *memoryTasks) ListDueBetween(_ context.Context, email string, from, to time.Time) ([]domain.Task, error) {
	return m.filter(func(t domain.Task) bool {
		return t.AssignedTo == email && !t.DueDate.Before(from) && t.DueDate.Before(to)
	}), nil
}

func (m *memoryTasks) ListOverdue(_ context.Context, email string, before time.Time) ([]domain.Task, error) {
	return m.filter(func(t domain.Task) bool {
		return t.AssignedTo == email && t.IsPending() && t.DueDate.Before(before)
	}), nil
}

func (m *memoryTasks) CompletePending(_ context.Context, id, assignee string, at time.Time) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.AssignedTo != assignee || !task.IsPending() {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	task.CompletedDate = &at
	m.tasks[id] = task
	return task, nil
}

func (m *memoryTasks) FindSuccessor(_ context.Context, sourceID string) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.findSuccessorErr[sourceID]; err != nil {
		return domain.Task{}, err
	}
	for _, task := range m.tasks {
		if task.SourceTaskID != nil && *task.SourceTaskID == sourceID {
			return task, nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (m *memoryTasks) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memoryTasks) all() []domain.Task {
	return m.filter(func(domain.Task) bool { return true })
}

func (m *memoryTasks) successorsOf(id string) []domain.Task {
	return m.filter(func(t domain.Task) bool { return t.SourceTaskID != nil && *t.SourceTaskID == id })
}

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemoryUsers(users ...domain.User) *memoryUsers {
	m := &memoryUsers{users: map[string]domain.User{}}
	for i, user := range users {
		if user.ID == "" {
			user.ID = fmt.Sprintf("user-%d", i+1)
		}
		m.users[user.Email] = user
	}
	return m
}

func (m *memoryUsers) Create(_ context.Context, user domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Email]; ok {
		return domain.User{}, domain.ErrUserAlreadyExists
	}
	user.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	m.users[user.Email] = user
	return user, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (m *memoryUsers) List(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (m *memoryUsers) ListEmails(ctx context.Context) ([]string, error) {
	users, _ := m.List(ctx)
	emails := make([]string, 0, len(users))
	for _, user := range users {
		emails = append(emails, user.Email)
	}
	return emails, nil
}

func (m *memoryUsers) AdjustCounters(_ context.Context, email string, delta domain.CounterDelta) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Counters = user.Counters.Apply(delta)
	m.users[email] = user
	return nil
}

func (m *memoryUsers) counters(email string) domain.TaskCounters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[email].Counters
}

type recordingNotifier struct {
	texts []string
	err   error
}

func (n *recordingNotifier) Notify(_ context.Context, text string) error {
	n.texts = append(n.texts, text)
	return n.err
}

type memoryChat struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
	err      error
}

func (m *memoryChat) Create(_ context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return domain.ChatMessage{}, m.err
	}
	msg.ID = fmt.Sprintf("msg-%d", len(m.messages)+1)
	m.messages = append(m.messages, msg)
	return msg, nil
}

func (m *memoryChat) ListBefore(_ context.Context, before time.Time, limit int) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.ChatMessage
	for _, msg := range m.messages {
		if msg.Timestamp.Before(before) {
			out = append(out, msg)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type memoryUpdates struct {
	mu      sync.Mutex
	updates []domain.TaskUpdate
}

func (m *memoryUpdates) Create(_ context.Context, update domain.TaskUpdate) (domain.TaskUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	update.ID = fmt.Sprintf("update-%d", len(m.updates)+1)
	m.updates = append(m.updates, update)
	return update, nil
}

func (m *memoryUpdates) ListByTask(_ context.Context, taskID string) ([]domain.TaskUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.TaskUpdate
	for _, update := range m.updates {
		if update.TaskID == taskID {
			out = append(out, update)
		}
	}
	return out, nil
}

type memoryDetails struct {
	mu      sync.Mutex
	details map[string]domain.UserDetail
}

func newMemoryDetails() *memoryDetails {
	return &memoryDetails{details: map[string]domain.UserDetail{}}
}

func (m *memoryDetails) Get(_ context.Context, userID string) (domain.UserDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	detail, ok := m.details[userID]
	if !ok {
		return domain.UserDetail{}, domain.ErrUserDetailNotFound
	}
	return detail, nil
}

func (m *memoryDetails) Upsert(_ context.Context, detail domain.UserDetail) (domain.UserDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.details[detail.UserID] = detail
	return detail, nil
}

type memorySummaries struct {
	mu   sync.Mutex
	sent map[string]bool
}

func newMemorySummaries() *memorySummaries {
	return &memorySummaries{sent: map[string]bool{}}
}

func (m *memorySummaries) HasSent(_ context.Context, email, day string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[email+"|"+day], nil
}

func (m *memorySummaries) MarkSent(_ context.Context, email, day string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent[email+"|"+day] = true
	return nil
}

var errStoreDown = errors.New("store is down")

var (
	_ ports.TaskRepository = (*memoryTasks)(nil)
	_ ports.UserRepository = (*memoryUsers)(nil)
	_ ports.Notifier       = (*recordingNotifier)(nil)

	_ ports.ChatRepository          = (*memoryChat)(nil)
	_ ports.TaskUpdateRepository    = (*memoryUpdates)(nil)
	_ ports.UserDetailRepository    = (*memoryDetails)(nil)
	_ ports.SummaryStatusRepository = (*memorySummaries)(nil)
)
