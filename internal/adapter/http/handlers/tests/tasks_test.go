package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskease/internal/adapter/http/dto"
	"taskease/internal/adapter/http/handlers"
	"taskease/internal/core/domain"
	"taskease/pkg/apierrors"
	"taskease/pkg/translator"
)

func doRequest(router *gin.Engine, method, path, body, lang string, authenticated bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept-Language", lang)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+callerToken)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apierrors.JsonErr {
	t.Helper()

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.False(t, got.Success)
	require.Equal(t, rec.Code, got.ErrDetails.Code)
	return got
}

func newTaskRouter(serviceMock *taskServiceMock) *gin.Engine {
	handler := handlers.NewTaskHandler(serviceMock, time.UTC)

	router, api := newRouter()
	api.POST("/tasks", handler.CreateTask)
	api.GET("/tasks/assigned", handler.ListAssignedTasks)
	api.GET("/tasks/created", handler.ListCreatedTasks)
	api.GET("/tasks/:id", handler.GetTask)
	api.POST("/tasks/:id/complete", handler.CompleteTask)
	api.DELETE("/tasks/:id", handler.DeleteTask)
	return router
}

func sampleTask() domain.Task {
	return domain.Task{
		ID:            "665f1c2e9b1d4a0012345678",
		CreatedBy:     callerEmail,
		TaskName:      "Weekly report",
		AssignedTo:    "dev@example.com",
		AssignedName:  "Dev",
		TaskFrequency: domain.FrequencyWeekly,
		DueDate:       time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		Priority:      "High",
		CreatedAt:     time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC),
	}
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.MatchedBy(func(input domain.CreateTaskInput) bool {
		return input.CreatedBy == callerEmail &&
			input.TaskName == "Weekly report" &&
			input.AssignedTo == "dev@example.com" &&
			input.TaskFrequency == domain.FrequencyWeekly &&
			input.DueDate != nil &&
			input.DueDate.Equal(time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC))
	})).Return(sampleTask(), nil).Once()
	router := newTaskRouter(serviceMock)

	body := `{"taskName":" Weekly report ","assignedTo":"Dev@Example.com","taskFrequency":"Weekly","dueDate":"2024-06-07","priority":"High"}`
	rec := doRequest(router, http.MethodPost, "/api/tasks", body, translator.LanguageEn, true)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Success)
	require.Equal(t, "665f1c2e9b1d4a0012345678", got.Task.ID)
	require.Equal(t, "Weekly", got.Task.TaskFrequency)
	require.Equal(t, "2024-06-07T00:00:00Z", got.Task.DueDate)
	require.Nil(t, got.Task.CompletedDate)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "missing assignee", body: `{"taskName":"Report"}`, message: "Invalid task payload"},
		{name: "blank name", body: `{"taskName":"   ","assignedTo":"dev@example.com"}`, message: "Invalid task payload"},
		{name: "bad date", body: `{"taskName":"Report","assignedTo":"dev@example.com","dueDate":"tomorrow"}`, message: "Invalid task payload"},
		{
			name:    "unknown frequency",
			body:    `{"taskName":"Report","assignedTo":"dev@example.com","taskFrequency":"Yearly"}`,
			message: "Task frequency must be one of OneTime, Daily, Weekly or Monthly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			router := newTaskRouter(serviceMock)

			rec := doRequest(router, http.MethodPost, "/api/tasks", tt.body, translator.LanguageEn, true)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, tt.message, decodeError(t, rec).ErrDetails.Message)
			serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_CreateTask_AssigneeNotRegistered(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.Anything).
		Return(domain.Task{}, domain.ErrAssigneeNotRegistered).Once()
	router := newTaskRouter(serviceMock)

	rec := doRequest(router, http.MethodPost, "/api/tasks", `{"taskName":"Report","assignedTo":"ghost@example.com"}`, translator.LanguageEn, true)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "The assignee is not a registered user", decodeError(t, rec).ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_Unauthorized(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newTaskRouter(serviceMock)

	rec := doRequest(router, http.MethodPost, "/api/tasks", `{"taskName":"Report","assignedTo":"dev@example.com"}`, translator.LanguageFr, false)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Authentification requise", decodeError(t, rec).ErrDetails.Message)
	serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestTaskHandler_ListAssignedTasks(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		email string
	}{
		{name: "caller by default", path: "/api/tasks/assigned", email: callerEmail},
		{name: "query override", path: "/api/tasks/assigned?email=dev@example.com", email: "dev@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			serviceMock.On("ListAssignedTo", mock.Anything, tt.email).Return([]domain.Task{sampleTask()}, nil).Once()
			router := newTaskRouter(serviceMock)

			rec := doRequest(router, http.MethodGet, tt.path, "", translator.LanguageEn, true)

			require.Equal(t, http.StatusOK, rec.Code)

			var got dto.TaskListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.Len(t, got.Tasks, 1)
			require.Equal(t, "Weekly report", got.Tasks[0].TaskName)
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_ListCreatedTasks_Empty(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListCreatedBy", mock.Anything, callerEmail).Return(nil, nil).Once()
	router := newTaskRouter(serviceMock)

	rec := doRequest(router, http.MethodGet, "/api/tasks/created", "", translator.LanguageEn, true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"tasks":[]}`, rec.Body.String())
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListCreatedTasks_Error(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListCreatedBy", mock.Anything, callerEmail).Return(nil, errors.New("db is down")).Once()
	router := newTaskRouter(serviceMock)

	rec := doRequest(router, http.MethodGet, "/api/tasks/created", "", translator.LanguageEn, true)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "failed to list tasks", decodeError(t, rec).ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, "missing").Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	router := newTaskRouter(serviceMock)

	rec := doRequest(router, http.MethodGet, "/api/tasks/missing", "", translator.LanguageFr, true)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Tâche introuvable", decodeError(t, rec).ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CompleteTask_GeneratesSuccessor(t *testing.T) {
	completedAt := time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC)
	completed := sampleTask()
	completed.AssignedTo = callerEmail
	completed.CompletedDate = &completedAt

	sourceID := completed.ID
	generated := sampleTask()
	generated.ID = "665f1c2e9b1d4a0012345679"
	generated.DueDate = time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC)
	generated.SourceTaskID = &sourceID

	serviceMock := new(taskServiceMock)
	serviceMock.On("CompleteTask", mock.Anything, completed.ID, callerEmail).
		Return(domain.CompletionResult{Completed: completed, Generated: &generated}, nil).Once()
	router := newTaskRouter(serviceMock)

	rec := doRequest(router, http.MethodPost, "/api/tasks/"+completed.ID+"/complete", "", translator.LanguageEn, true)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.CompleteTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Success)
	require.NotNil(t, got.CompletedTask.CompletedDate)
	require.Equal(t, "2024-06-04T10:00:00Z", *got.CompletedTask.CompletedDate)
	require.NotNil(t, got.GeneratedNewTask)
	require.Equal(t, "2024-06-11T10:00:00Z", got.GeneratedNewTask.DueDate)
	require.Equal(t, completed.ID, *got.GeneratedNewTask.SourceTaskID)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CompleteTask_OneTime(t *testing.T) {
	completedAt := time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC)
	completed := sampleTask()
	completed.TaskFrequency = domain.FrequencyOneTime
	completed.CompletedDate = &completedAt

	serviceMock := new(taskServiceMock)
	serviceMock.On("CompleteTask", mock.Anything, completed.ID, callerEmail).
		Return(domain.CompletionResult{Completed: completed}, nil).Once()
	router := newTaskRouter(serviceMock)

	rec := doRequest(router, http.MethodPost, "/api/tasks/"+completed.ID+"/complete", "", translator.LanguageEn, true)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Contains(t, got, "generatedNewTask")
	require.Nil(t, got["generatedNewTask"])
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CompleteTask_NotPendingForCaller(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CompleteTask", mock.Anything, "abc", callerEmail).
		Return(domain.CompletionResult{}, domain.ErrTaskNotFound).Once()
	router := newTaskRouter(serviceMock)

	rec := doRequest(router, http.MethodPost, "/api/tasks/abc/complete", "", translator.LanguageEn, true)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Task not found", decodeError(t, rec).ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{name: "deleted", wantStatus: http.StatusOK, wantBody: `{"success":true,"message":"Task deleted successfully"}`},
		{name: "not found", serviceErr: domain.ErrTaskNotFound, wantStatus: http.StatusNotFound},
		{name: "store failure", serviceErr: errors.New("db is down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			serviceMock.On("DeleteTask", mock.Anything, "abc").Return(tt.serviceErr).Once()
			router := newTaskRouter(serviceMock)

			rec := doRequest(router, http.MethodDelete, "/api/tasks/abc", "", translator.LanguageEn, true)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				require.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				decodeError(t, rec)
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
