package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskease/internal/adapter/http/dto"
	"taskease/internal/adapter/http/mapper"
	"taskease/internal/adapter/http/middleware"
	"taskease/internal/adapter/http/validation"
	"taskease/internal/core/ports"
	"taskease/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
	location    *time.Location
}

// NewTaskHandler builds the task endpoints. Date-only due dates are read in loc.
func NewTaskHandler(taskService ports.TaskService, loc *time.Location) *TaskHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskHandler{taskService: taskService, location: loc}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, middleware.GetEmail(c), h.location)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidTaskPayload, "failed to validate task")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask, "failed to create task",
			zap.String("assigned_to", input.AssignedTo))
		return
	}

	c.JSON(http.StatusCreated, dto.TaskResponse{
		Success: true,
		Message: "Task created successfully",
		Task:    mapper.ToTaskItem(task),
	})
}

func (h *TaskHandler) ListAssignedTasks(c *gin.Context) {
	email := targetEmail(c)

	tasks, err := h.taskService.ListAssignedTo(c.Request.Context(), email)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask, "failed to list assigned tasks", zap.String("email", email))
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{Tasks: mapper.ToTaskItems(tasks)})
}

func (h *TaskHandler) ListCreatedTasks(c *gin.Context) {
	email := targetEmail(c)

	tasks, err := h.taskService.ListCreatedBy(c.Request.Context(), email)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask, "failed to list created tasks", zap.String("email", email))
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{Tasks: mapper.ToTaskItems(tasks)})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetTask, "failed to get task", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Success: true,
		Message: "Task fetched successfully",
		Task:    mapper.ToTaskItem(task),
	})
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	result, err := h.taskService.CompleteTask(c.Request.Context(), taskID, middleware.GetEmail(c))
	if err != nil {
		respondError(c, err, apierrors.MsgFailCompleteTask, "failed to complete task", zap.String("task_id", taskID))
		return
	}

	resp := dto.CompleteTaskResponse{
		Success:       true,
		Message:       "Task marked as completed",
		CompletedTask: mapper.ToTaskItem(result.Completed),
	}
	if result.Generated != nil {
		generated := mapper.ToTaskItem(*result.Generated)
		resp.GeneratedNewTask = &generated
		resp.Message = "Task marked as completed and next occurrence generated"
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Task deleted successfully"})
}

func taskIDParam(c *gin.Context) (string, bool) {
	taskID := strings.TrimSpace(c.Param("id"))
	if taskID == "" {
		badRequest(c, apierrors.MsgInvalidTaskID)
		return "", false
	}
	return taskID, true
}

// targetEmail is the ?email= query value when present, else the caller.
func targetEmail(c *gin.Context) string {
	if email := strings.TrimSpace(c.Query("email")); email != "" {
		return email
	}
	return middleware.GetEmail(c)
}
