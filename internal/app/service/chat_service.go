package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
	// InitialHistorySize is how many messages a client receives when it joins.
	InitialHistorySize = 50
)

// ChatService persists world-chat messages and fans them out to broadcasters.
// It also serves as the system-wide Notifier.
type ChatService struct {
	chatRepository ports.ChatRepository
	userRepository ports.UserRepository
	broadcasters   []ports.Broadcaster
	now            Clock
}

func NewChatService(chatRepository ports.ChatRepository, userRepository ports.UserRepository, broadcasters ...ports.Broadcaster) *ChatService {
	return &ChatService{
		chatRepository: chatRepository,
		userRepository: userRepository,
		broadcasters:   broadcasters,
		now:            time.Now,
	}
}

func (s *ChatService) WithClock(now Clock) *ChatService {
	s.now = now
	return s
}

func (s *ChatService) History(ctx context.Context, before time.Time, limit int) ([]domain.ChatMessage, error) {
	if before.IsZero() {
		before = s.now()
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.chatRepository.ListBefore(ctx, before, limit)
}

func (s *ChatService) PostUserMessage(ctx context.Context, email, message string) (domain.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ChatMessage{}, domain.ErrEmptyMessage
	}

	user, err := s.userRepository.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return domain.ChatMessage{}, err
	}

	userID := user.ID
	msg, err := s.chatRepository.Create(ctx, domain.ChatMessage{
		UserID:    &userID,
		Username:  user.Username,
		Message:   message,
		Timestamp: s.now(),
	})
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("store chat message: %w", err)
	}

	s.publish(ctx, msg)
	return msg, nil
}

func (s *ChatService) Notify(ctx context.Context, text string) error {
	msg, err := s.chatRepository.Create(ctx, domain.ChatMessage{
		Username:  domain.SystemUsername,
		Message:   text,
		IsSystem:  true,
		Timestamp: s.now(),
	})
	if err != nil {
		return fmt.Errorf("store system message: %w", err)
	}

	s.publish(ctx, msg)
	return nil
}

func (s *ChatService) publish(ctx context.Context, msg domain.ChatMessage) {
	for _, b := range s.broadcasters {
		if err := b.Publish(ctx, msg); err != nil {
			zap.L().Warn("failed to publish chat message", zap.String("message_id", msg.ID), zap.Error(err))
		}
	}
}

var (
	_ ports.ChatService = (*ChatService)(nil)
	_ ports.Notifier    = (*ChatService)(nil)
)
