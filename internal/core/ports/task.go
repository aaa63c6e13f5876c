package ports

import (
	"context"
	"time"

	"taskease/internal/core/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	GetByID(ctx context.Context, id string) (domain.Task, error)
	ListByAssignee(ctx context.Context, email string) ([]domain.Task, error)
	ListByCreator(ctx context.Context, email string) ([]domain.Task, error)
	ListRecurring(ctx context.Context) ([]domain.Task, error)
	// ListDueBetween returns the assignee's tasks with from <= dueDate < to.
	ListDueBetween(ctx context.Context, email string, from, to time.Time) ([]domain.Task, error)
	// ListOverdue returns the assignee's pending tasks due before the given time.
	ListOverdue(ctx context.Context, email string, before time.Time) ([]domain.Task, error)
	// CompletePending sets completedDate on the pending task matching id and assignee.
	CompletePending(ctx context.Context, id, assignee string, at time.Time) (domain.Task, error)
	// FindSuccessor returns the task regenerated from sourceID, or ErrTaskNotFound.
	FindSuccessor(ctx context.Context, sourceID string) (domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	ListAssignedTo(ctx context.Context, email string) ([]domain.Task, error)
	ListCreatedBy(ctx context.Context, email string) ([]domain.Task, error)
	CompleteTask(ctx context.Context, id, assignee string) (domain.CompletionResult, error)
	DeleteTask(ctx context.Context, id string) error
}

// Recurrence is the single authority that creates successor tasks.
type Recurrence interface {
	SpawnSuccessor(ctx context.Context, source domain.Task, dueDate time.Time) (*domain.Task, error)
	Sweep(ctx context.Context) (domain.SweepReport, error)
}
