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
	userColumns = `id, email, username, tasks_assigned, tasks_completed, tasks_in_progress, tasks_not_started, created_at`

	// Each counter is clamped at zero inside the single UPDATE.
	adjustCountersQuery = `
UPDATE users SET
  tasks_assigned    = GREATEST(tasks_assigned + ?, 0),
  tasks_completed   = GREATEST(tasks_completed + ?, 0),
  tasks_in_progress = GREATEST(tasks_in_progress + ?, 0),
  tasks_not_started = GREATEST(tasks_not_started + ?, 0)
WHERE email = ?;
`
)

type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID              string    `db:"id"`
	Email           string    `db:"email"`
	Username        string    `db:"username"`
	TasksAssigned   int       `db:"tasks_assigned"`
	TasksCompleted  int       `db:"tasks_completed"`
	TasksInProgress int       `db:"tasks_in_progress"`
	TasksNotStarted int       `db:"tasks_not_started"`
	CreatedAt       time.Time `db:"created_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	user.ID = uuid.NewString()
	user.Email = domain.NormalizeEmail(user.Email)

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (:id, :email, :username, :tasks_assigned, :tasks_completed, :tasks_in_progress, :tasks_not_started, :created_at)`,
		mapDomainUserToRow(user),
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.User{}, domain.ErrUserAlreadyExists
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, domain.NormalizeEmail(email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+userColumns+` FROM users ORDER BY email`); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRowToDomainUser(row))
	}
	return users, nil
}

func (r *UserRepository) ListEmails(ctx context.Context) ([]string, error) {
	emails := []string{}
	if err := r.db.SelectContext(ctx, &emails, `SELECT email FROM users ORDER BY email`); err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *UserRepository) AdjustCounters(ctx context.Context, email string, delta domain.CounterDelta) error {
	email = domain.NormalizeEmail(email)

	result, err := r.db.ExecContext(ctx, adjustCountersQuery,
		delta.Assigned, delta.Completed, delta.InProgress, delta.NotStarted, email,
	)
	if err != nil {
		return fmt.Errorf("adjust counters: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when the values did not change.
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email); err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...any) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return mapUserRowToDomainUser(row), nil
}

func mapDomainUserToRow(user domain.User) userRow {
	return userRow{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		TasksAssigned:   user.Counters.TasksAssigned,
		TasksCompleted:  user.Counters.TasksCompleted,
		TasksInProgress: user.Counters.TasksInProgress,
		TasksNotStarted: user.Counters.TasksNotStarted,
		CreatedAt:       user.CreatedAt.UTC(),
	}
}

func mapUserRowToDomainUser(row userRow) domain.User {
	return domain.User{
		ID:       row.ID,
		Email:    row.Email,
		Username: row.Username,
		Counters: domain.TaskCounters{
			TasksAssigned:   row.TasksAssigned,
			TasksCompleted:  row.TasksCompleted,
			TasksInProgress: row.TasksInProgress,
			TasksNotStarted: row.TasksNotStarted,
		},
		CreatedAt: row.CreatedAt,
	}
}
