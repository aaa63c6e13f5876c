package ports

import (
	"context"
	"time"

	"taskease/internal/core/domain"
)

type ChatRepository interface {
	Create(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error)
	// ListBefore returns up to limit messages older than before, oldest first.
	ListBefore(ctx context.Context, before time.Time, limit int) ([]domain.ChatMessage, error)
}

// Broadcaster delivers a chat message to connected clients or an external channel.
type Broadcaster interface {
	Publish(ctx context.Context, msg domain.ChatMessage) error
}

// Notifier posts human-readable system events to the shared channel.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type ChatService interface {
	History(ctx context.Context, before time.Time, limit int) ([]domain.ChatMessage, error)
	PostUserMessage(ctx context.Context, email, message string) (domain.ChatMessage, error)
	Notify(ctx context.Context, text string) error
}
