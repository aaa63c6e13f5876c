package service_test

import (
	"context"
	"time"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) tasks(args mock.Arguments) ([]domain.Task, error) {
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) GetByID(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) ListByAssignee(ctx context.Context, email string) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, email))
}

func (m *taskRepositoryMock) ListByCreator(ctx context.Context, email string) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, email))
}

func (m *taskRepositoryMock) ListRecurring(ctx context.Context) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx))
}

func (m *taskRepositoryMock) ListDueBetween(ctx context.Context, email string, from, to time.Time) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, email, from, to))
}

func (m *taskRepositoryMock) ListOverdue(ctx context.Context, email string, before time.Time) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, email, before))
}

func (m *taskRepositoryMock) CompletePending(ctx context.Context, id, assignee string, at time.Time) (domain.Task, error) {
	args := m.Called(ctx, id, assignee, at)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) FindSuccessor(ctx context.Context, sourceID string) (domain.Task, error) {
	args := m.Called(ctx, sourceID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mailSenderMock struct {
	mock.Mock
}

func (m *mailSenderMock) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type broadcasterMock struct {
	mock.Mock
}

func (m *broadcasterMock) Publish(ctx context.Context, msg domain.ChatMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type identityVerifierMock struct {
	mock.Mock
}

func (m *identityVerifierMock) Verify(ctx context.Context, idToken string) (ports.Identity, error) {
	args := m.Called(ctx, idToken)
	return args.Get(0).(ports.Identity), args.Error(1)
}

type sessionTokensMock struct {
	mock.Mock
}

func (m *sessionTokensMock) Issue(email string) (string, time.Time, error) {
	args := m.Called(email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *sessionTokensMock) Parse(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

var (
	_ ports.TaskRepository   = (*taskRepositoryMock)(nil)
	_ ports.MailSender       = (*mailSenderMock)(nil)
	_ ports.Broadcaster      = (*broadcasterMock)(nil)
	_ ports.IdentityVerifier = (*identityVerifierMock)(nil)
	_ ports.SessionTokens    = (*sessionTokensMock)(nil)
)
