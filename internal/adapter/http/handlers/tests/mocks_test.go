package tests

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"taskease/internal/adapter/http/middleware"
	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

const (
	callerEmail = "lead@example.com"
	callerToken = "valid-token"
)

type staticTokens struct{}

func (staticTokens) Issue(email string) (string, time.Time, error) {
	return callerToken, time.Time{}, nil
}

func (staticTokens) Parse(token string) (string, error) {
	if token != callerToken {
		return "", domain.ErrInvalidSessionToken
	}
	return callerEmail, nil
}

// newRouter mirrors the production middleware chain for authenticated groups.
func newRouter() (*gin.Engine, *gin.RouterGroup) {
	router := gin.New()
	api := router.Group("/api", middleware.LanguageMiddleware())
	return router, api.Group("", middleware.AuthMiddleware(staticTokens{}))
}

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListAssignedTo(ctx context.Context, email string) ([]domain.Task, error) {
	args := m.Called(ctx, email)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) ListCreatedBy(ctx context.Context, email string) ([]domain.Task, error) {
	args := m.Called(ctx, email)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) CompleteTask(ctx context.Context, id, assignee string) (domain.CompletionResult, error) {
	args := m.Called(ctx, id, assignee)
	return args.Get(0).(domain.CompletionResult), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type taskUpdateServiceMock struct {
	mock.Mock
}

func (m *taskUpdateServiceMock) AddUpdate(ctx context.Context, input domain.CreateTaskUpdateInput) (domain.TaskUpdate, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.TaskUpdate), args.Error(1)
}

func (m *taskUpdateServiceMock) ListUpdates(ctx context.Context, taskID string) ([]domain.TaskUpdate, error) {
	args := m.Called(ctx, taskID)

	var updates []domain.TaskUpdate
	if value := args.Get(0); value != nil {
		updates = value.([]domain.TaskUpdate)
	}
	return updates, args.Error(1)
}

type userServiceMock struct {
	mock.Mock
}

func (m *userServiceMock) ListEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)

	var emails []string
	if value := args.Get(0); value != nil {
		emails = value.([]string)
	}
	return emails, args.Error(1)
}

func (m *userServiceMock) GetProfile(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) GetDetail(ctx context.Context, email string) (domain.User, domain.UserDetail, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Get(1).(domain.UserDetail), args.Error(2)
}

func (m *userServiceMock) SaveDetail(ctx context.Context, email string, phoneNumber *string, role domain.Role) (domain.UserDetail, error) {
	args := m.Called(ctx, email, phoneNumber, role)
	return args.Get(0).(domain.UserDetail), args.Error(1)
}

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Signup(ctx context.Context, idToken, username string) (ports.Session, error) {
	args := m.Called(ctx, idToken, username)
	return args.Get(0).(ports.Session), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, idToken string) (ports.Session, error) {
	args := m.Called(ctx, idToken)
	return args.Get(0).(ports.Session), args.Error(1)
}

type chatServiceMock struct {
	mock.Mock
}

func (m *chatServiceMock) History(ctx context.Context, before time.Time, limit int) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, before, limit)

	var messages []domain.ChatMessage
	if value := args.Get(0); value != nil {
		messages = value.([]domain.ChatMessage)
	}
	return messages, args.Error(1)
}

func (m *chatServiceMock) PostUserMessage(ctx context.Context, email, message string) (domain.ChatMessage, error) {
	args := m.Called(ctx, email, message)
	return args.Get(0).(domain.ChatMessage), args.Error(1)
}

func (m *chatServiceMock) Notify(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

type digestServiceMock struct {
	mock.Mock
}

func (m *digestServiceMock) SendDailySummaries(ctx context.Context, now time.Time) (ports.DigestReport, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(ports.DigestReport), args.Error(1)
}

type healthCheckerMock struct {
	mock.Mock
}

func (m *healthCheckerMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *healthCheckerMock) Name() string {
	args := m.Called()
	return args.String(0)
}

var (
	_ ports.TaskService       = (*taskServiceMock)(nil)
	_ ports.TaskUpdateService = (*taskUpdateServiceMock)(nil)
	_ ports.UserService       = (*userServiceMock)(nil)
	_ ports.AuthService       = (*authServiceMock)(nil)
	_ ports.ChatService       = (*chatServiceMock)(nil)
	_ ports.DigestService     = (*digestServiceMock)(nil)
	_ ports.HealthChecker     = (*healthCheckerMock)(nil)
	_ ports.SessionTokens     = staticTokens{}
)
