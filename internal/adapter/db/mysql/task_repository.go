package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

const (
	taskColumns = `id, created_by, task_name, task_description, assigned_to, assigned_name,
  task_frequency, due_date, priority, completed_date, source_task_id, created_at`

	insertTaskQuery = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (:id, :created_by, :task_name, :task_description, :assigned_to, :assigned_name,
  :task_frequency, :due_date, :priority, :completed_date, :source_task_id, :created_at);
`
	selectTaskQuery = `SELECT ` + taskColumns + ` FROM tasks `
)

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID              string         `db:"id"`
	CreatedBy       string         `db:"created_by"`
	TaskName        string         `db:"task_name"`
	TaskDescription string         `db:"task_description"`
	AssignedTo      string         `db:"assigned_to"`
	AssignedName    string         `db:"assigned_name"`
	TaskFrequency   string         `db:"task_frequency"`
	DueDate         time.Time      `db:"due_date"`
	Priority        string         `db:"priority"`
	CompletedDate   sql.NullTime   `db:"completed_date"`
	SourceTaskID    sql.NullString `db:"source_task_id"`
	CreatedAt       time.Time      `db:"created_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.ID = uuid.NewString()
	if _, err := r.db.NamedExecContext(ctx, insertTaskQuery, mapDomainTaskToRow(task)); err != nil {
		if task.SourceTaskID != nil && isDuplicateEntry(err) {
			return domain.Task{}, domain.ErrSuccessorExists
		}
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (domain.Task, error) {
	return r.getOne(ctx, selectTaskQuery+`WHERE id = ?`, id)
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, email string) ([]domain.Task, error) {
	return r.list(ctx, selectTaskQuery+`WHERE assigned_to = ? ORDER BY due_date`, email)
}

func (r *TaskRepository) ListByCreator(ctx context.Context, email string) ([]domain.Task, error) {
	return r.list(ctx, selectTaskQuery+`WHERE created_by = ? ORDER BY due_date`, email)
}

func (r *TaskRepository) ListRecurring(ctx context.Context) ([]domain.Task, error) {
	query, args, err := sqlx.In(selectTaskQuery+`WHERE task_frequency IN (?) ORDER BY due_date`, frequencyStrings(domain.RecurringFrequencies))
	if err != nil {
		return nil, err
	}
	return r.list(ctx, r.db.Rebind(query), args...)
}

func (r *TaskRepository) ListDueBetween(ctx context.Context, email string, from, to time.Time) ([]domain.Task, error) {
	return r.list(ctx, selectTaskQuery+`WHERE assigned_to = ? AND due_date >= ? AND due_date < ? ORDER BY due_date`, email, from.UTC(), to.UTC())
}

func (r *TaskRepository) ListOverdue(ctx context.Context, email string, before time.Time) ([]domain.Task, error) {
	return r.list(ctx, selectTaskQuery+`WHERE assigned_to = ? AND completed_date IS NULL AND due_date < ? ORDER BY due_date`, email, before.UTC())
}

func (r *TaskRepository) CompletePending(ctx context.Context, id, assignee string, at time.Time) (domain.Task, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed_date = ? WHERE id = ? AND assigned_to = ? AND completed_date IS NULL`,
		at.UTC(), id, assignee,
	)
	if err != nil {
		return domain.Task{}, fmt.Errorf("complete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Task{}, err
	}
	if affected == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *TaskRepository) FindSuccessor(ctx context.Context, sourceID string) (domain.Task, error) {
	return r.getOne(ctx, selectTaskQuery+`WHERE source_task_id = ?`, sourceID)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) getOne(ctx context.Context, query string, args ...any) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func frequencyStrings(frequencies []domain.Frequency) []string {
	out := make([]string, 0, len(frequencies))
	for _, f := range frequencies {
		out = append(out, string(f))
	}
	return out
}

func mapDomainTaskToRow(task domain.Task) taskRow {
	row := taskRow{
		ID:              task.ID,
		CreatedBy:       task.CreatedBy,
		TaskName:        task.TaskName,
		TaskDescription: task.TaskDescription,
		AssignedTo:      task.AssignedTo,
		AssignedName:    task.AssignedName,
		TaskFrequency:   string(task.TaskFrequency),
		DueDate:         task.DueDate.UTC(),
		Priority:        task.Priority,
		CreatedAt:       task.CreatedAt.UTC(),
	}

	if task.CompletedDate != nil {
		row.CompletedDate = sql.NullTime{Time: task.CompletedDate.UTC(), Valid: true}
	}

	if task.SourceTaskID != nil {
		row.SourceTaskID = sql.NullString{String: *task.SourceTaskID, Valid: true}
	}

	return row
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:              row.ID,
		CreatedBy:       row.CreatedBy,
		TaskName:        row.TaskName,
		TaskDescription: row.TaskDescription,
		AssignedTo:      row.AssignedTo,
		AssignedName:    row.AssignedName,
		TaskFrequency:   domain.Frequency(row.TaskFrequency),
		DueDate:         row.DueDate,
		Priority:        row.Priority,
		CreatedAt:       row.CreatedAt,
	}

	if row.CompletedDate.Valid {
		value := row.CompletedDate.Time
		task.CompletedDate = &value
	}

	if row.SourceTaskID.Valid {
		value := row.SourceTaskID.String
		task.SourceTaskID = &value
	}

	return task
}
