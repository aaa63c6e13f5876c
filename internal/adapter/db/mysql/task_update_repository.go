package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

type TaskUpdateRepository struct {
	db *sqlx.DB
}

type taskUpdateRow struct {
	ID         string    `db:"id"`
	TaskID     string    `db:"task_id"`
	UpdateText string    `db:"update_text"`
	UpdatedBy  string    `db:"updated_by"`
	UpdateType string    `db:"update_type"`
	CreatedAt  time.Time `db:"created_at"`
}

var _ ports.TaskUpdateRepository = (*TaskUpdateRepository)(nil)

func NewTaskUpdateRepository(db *sqlx.DB) *TaskUpdateRepository {
	return &TaskUpdateRepository{db: db}
}

func (r *TaskUpdateRepository) Create(ctx context.Context, update domain.TaskUpdate) (domain.TaskUpdate, error) {
	update.ID = uuid.NewString()
	_, err := r.db.NamedExecContext(ctx, `
INSERT INTO task_updates (id, task_id, update_text, updated_by, update_type, created_at)
VALUES (:id, :task_id, :update_text, :updated_by, :update_type, :created_at)`,
		taskUpdateRow{
			ID:         update.ID,
			TaskID:     update.TaskID,
			UpdateText: update.UpdateText,
			UpdatedBy:  update.UpdatedBy,
			UpdateType: string(update.UpdateType),
			CreatedAt:  update.CreatedAt.UTC(),
		},
	)
	if err != nil {
		return domain.TaskUpdate{}, fmt.Errorf("insert task update: %w", err)
	}
	return update, nil
}

func (r *TaskUpdateRepository) ListByTask(ctx context.Context, taskID string) ([]domain.TaskUpdate, error) {
	var rows []taskUpdateRow
	err := r.db.SelectContext(ctx, &rows, `
SELECT id, task_id, update_text, updated_by, update_type, created_at
FROM task_updates WHERE task_id = ? ORDER BY created_at, id`, taskID)
	if err != nil {
		return nil, err
	}

	updates := make([]domain.TaskUpdate, 0, len(rows))
	for _, row := range rows {
		updates = append(updates, domain.TaskUpdate{
			ID:         row.ID,
			TaskID:     row.TaskID,
			UpdateText: row.UpdateText,
			UpdatedBy:  row.UpdatedBy,
			UpdateType: domain.UpdateType(row.UpdateType),
			CreatedAt:  row.CreatedAt,
		})
	}
	return updates, nil
}
