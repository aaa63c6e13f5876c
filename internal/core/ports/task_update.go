package ports

import (
	"context"

	"taskease/internal/core/domain"
)

type TaskUpdateRepository interface {
	Create(ctx context.Context, update domain.TaskUpdate) (domain.TaskUpdate, error)
	// ListByTask returns updates oldest first.
	ListByTask(ctx context.Context, taskID string) ([]domain.TaskUpdate, error)
}

type TaskUpdateService interface {
	AddUpdate(ctx context.Context, input domain.CreateTaskUpdateInput) (domain.TaskUpdate, error)
	ListUpdates(ctx context.Context, taskID string) ([]domain.TaskUpdate, error)
}
