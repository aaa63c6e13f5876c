package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskease/internal/adapter/http/dto"
	"taskease/internal/adapter/http/mapper"
	"taskease/internal/adapter/http/middleware"
	"taskease/internal/adapter/http/validation"
	"taskease/internal/core/ports"
	"taskease/pkg/apierrors"
)

type TaskUpdateHandler struct {
	updateService ports.TaskUpdateService
}

func NewTaskUpdateHandler(updateService ports.TaskUpdateService) *TaskUpdateHandler {
	return &TaskUpdateHandler{updateService: updateService}
}

func (h *TaskUpdateHandler) AddUpdate(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateTaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidUpdatePayload)
		return
	}

	input, err := validation.BuildCreateTaskUpdateInput(req, taskID, middleware.GetEmail(c))
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidUpdatePayload, "failed to validate task update")
		return
	}

	update, err := h.updateService.AddUpdate(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateUpdate, "failed to add task update", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusCreated, dto.TaskUpdateResponse{
		Success: true,
		Message: "Task update added successfully",
		Update:  mapper.ToTaskUpdateItem(update),
	})
}

func (h *TaskUpdateHandler) ListUpdates(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	updates, err := h.updateService.ListUpdates(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListUpdates, "failed to list task updates", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, dto.TaskUpdateListResponse{
		Success: true,
		Updates: mapper.ToTaskUpdateItems(updates),
	})
}
