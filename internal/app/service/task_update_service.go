package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

type TaskUpdateService struct {
	taskRepository   ports.TaskRepository
	updateRepository ports.TaskUpdateRepository
	now              Clock
}

func NewTaskUpdateService(taskRepository ports.TaskRepository, updateRepository ports.TaskUpdateRepository) *TaskUpdateService {
	return &TaskUpdateService{
		taskRepository:   taskRepository,
		updateRepository: updateRepository,
		now:              time.Now,
	}
}

func (s *TaskUpdateService) WithClock(now Clock) *TaskUpdateService {
	s.now = now
	return s
}

func (s *TaskUpdateService) AddUpdate(ctx context.Context, input domain.CreateTaskUpdateInput) (domain.TaskUpdate, error) {
	text := strings.TrimSpace(input.UpdateText)
	if text == "" {
		return domain.TaskUpdate{}, domain.ErrEmptyMessage
	}

	task, err := s.taskRepository.GetByID(ctx, input.TaskID)
	if err != nil {
		return domain.TaskUpdate{}, err
	}

	updateType := input.UpdateType
	if updateType == "" {
		updateType = domain.UpdateTypeComment
	}

	update, err := s.updateRepository.Create(ctx, domain.TaskUpdate{
		TaskID:     task.ID,
		UpdateText: text,
		UpdatedBy:  domain.NormalizeEmail(input.UpdatedBy),
		UpdateType: updateType,
		CreatedAt:  s.now(),
	})
	if err != nil {
		return domain.TaskUpdate{}, fmt.Errorf("create task update: %w", err)
	}
	return update, nil
}

func (s *TaskUpdateService) ListUpdates(ctx context.Context, taskID string) ([]domain.TaskUpdate, error) {
	task, err := s.taskRepository.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.updateRepository.ListByTask(ctx, task.ID)
}

var _ ports.TaskUpdateService = (*TaskUpdateService)(nil)
