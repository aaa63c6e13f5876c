package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

const upsertUserDetailQuery = `
INSERT INTO user_details (user_id, phone_number, role, created_at, updated_at)
VALUES (:user_id, :phone_number, :role, :created_at, :updated_at)
ON DUPLICATE KEY UPDATE
  phone_number = VALUES(phone_number),
  role = VALUES(role),
  updated_at = VALUES(updated_at);
`

type UserDetailRepository struct {
	db *sqlx.DB
}

type userDetailRow struct {
	UserID      string         `db:"user_id"`
	PhoneNumber sql.NullString `db:"phone_number"`
	Role        string         `db:"role"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

var _ ports.UserDetailRepository = (*UserDetailRepository)(nil)

func NewUserDetailRepository(db *sqlx.DB) *UserDetailRepository {
	return &UserDetailRepository{db: db}
}

func (r *UserDetailRepository) Get(ctx context.Context, userID string) (domain.UserDetail, error) {
	var row userDetailRow
	err := r.db.GetContext(ctx, &row,
		`SELECT user_id, phone_number, role, created_at, updated_at FROM user_details WHERE user_id = ?`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserDetail{}, domain.ErrUserDetailNotFound
		}
		return domain.UserDetail{}, err
	}

	detail := domain.UserDetail{
		UserID:    row.UserID,
		Role:      domain.Role(row.Role),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.PhoneNumber.Valid {
		value := row.PhoneNumber.String
		detail.PhoneNumber = &value
	}
	return detail, nil
}

func (r *UserDetailRepository) Upsert(ctx context.Context, detail domain.UserDetail) (domain.UserDetail, error) {
	row := userDetailRow{
		UserID:    detail.UserID,
		Role:      string(detail.Role),
		CreatedAt: detail.CreatedAt.UTC(),
		UpdatedAt: detail.UpdatedAt.UTC(),
	}
	if detail.PhoneNumber != nil {
		row.PhoneNumber = sql.NullString{String: *detail.PhoneNumber, Valid: true}
	}

	if _, err := r.db.NamedExecContext(ctx, upsertUserDetailQuery, row); err != nil {
		return domain.UserDetail{}, fmt.Errorf("upsert user detail: %w", err)
	}
	return r.Get(ctx, detail.UserID)
}
