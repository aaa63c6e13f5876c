package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

// Newest page first, then flipped so callers get oldest first.
const listChatBeforeQuery = `
SELECT * FROM (
  SELECT id, user_id, username, message, is_system, created_at
  FROM world_chat_messages
  WHERE created_at < ?
  ORDER BY created_at DESC
  LIMIT ?
) page
ORDER BY created_at ASC;
`

type ChatRepository struct {
	db *sqlx.DB
}

type chatRow struct {
	ID        string         `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Username  string         `db:"username"`
	Message   string         `db:"message"`
	IsSystem  bool           `db:"is_system"`
	CreatedAt time.Time      `db:"created_at"`
}

var _ ports.ChatRepository = (*ChatRepository)(nil)

func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Create(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	msg.ID = uuid.NewString()
	row := chatRow{
		ID:        msg.ID,
		Username:  msg.Username,
		Message:   msg.Message,
		IsSystem:  msg.IsSystem,
		CreatedAt: msg.Timestamp.UTC(),
	}
	if msg.UserID != nil {
		row.UserID = sql.NullString{String: *msg.UserID, Valid: true}
	}

	_, err := r.db.NamedExecContext(ctx, `
INSERT INTO world_chat_messages (id, user_id, username, message, is_system, created_at)
VALUES (:id, :user_id, :username, :message, :is_system, :created_at)`, row)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("insert chat message: %w", err)
	}
	return msg, nil
}

func (r *ChatRepository) ListBefore(ctx context.Context, before time.Time, limit int) ([]domain.ChatMessage, error) {
	var rows []chatRow
	if err := r.db.SelectContext(ctx, &rows, listChatBeforeQuery, before.UTC(), limit); err != nil {
		return nil, err
	}

	messages := make([]domain.ChatMessage, 0, len(rows))
	for _, row := range rows {
		msg := domain.ChatMessage{
			ID:        row.ID,
			Username:  row.Username,
			Message:   row.Message,
			IsSystem:  row.IsSystem,
			Timestamp: row.CreatedAt,
		}
		if row.UserID.Valid {
			value := row.UserID.String
			msg.UserID = &value
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
