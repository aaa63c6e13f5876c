package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskease/internal/core/ports"
)

type SummaryStatusRepository struct {
	db *sqlx.DB
}

var _ ports.SummaryStatusRepository = (*SummaryStatusRepository)(nil)

func NewSummaryStatusRepository(db *sqlx.DB) *SummaryStatusRepository {
	return &SummaryStatusRepository{db: db}
}

func (r *SummaryStatusRepository) HasSent(ctx context.Context, email, day string) (bool, error) {
	var sent bool
	err := r.db.GetContext(ctx, &sent,
		`SELECT EXISTS(SELECT 1 FROM summary_statuses WHERE email = ? AND day = ?)`, email, day)
	return sent, err
}

func (r *SummaryStatusRepository) MarkSent(ctx context.Context, email, day string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO summary_statuses (email, day, sent_at) VALUES (?, ?, ?)`,
		email, day, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("mark summary sent: %w", err)
	}
	return nil
}
