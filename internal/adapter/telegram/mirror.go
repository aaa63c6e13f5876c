package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

const (
	queueSize   = 64
	sendTimeout = 10 * time.Second
)

var ErrQueueFull = errors.New("telegram queue is full")

// Sender is satisfied by *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Mirror forwards system chat messages to a Telegram chat. Publish only
// queues; Run does the sending.
type Mirror struct {
	bot    Sender
	chatID int64
	queue  chan tgbotapi.MessageConfig
}

func NewMirror(token string, chatID int64) (*Mirror, error) {
	if token == "" || chatID == 0 {
		return nil, errors.New("telegram token and chat id are required")
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: sendTimeout})
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	return NewMirrorWithSender(bot, chatID), nil
}

func NewMirrorWithSender(bot Sender, chatID int64) *Mirror {
	return &Mirror{bot: bot, chatID: chatID, queue: make(chan tgbotapi.MessageConfig, queueSize)}
}

func (m *Mirror) Publish(ctx context.Context, msg domain.ChatMessage) error {
	if !msg.IsSystem {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	out := tgbotapi.NewMessage(m.chatID, msg.Message)
	out.DisableNotification = true

	select {
	case m.queue <- out:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run sends queued messages until ctx is done.
func (m *Mirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case out := <-m.queue:
			if _, err := m.bot.Send(out); err != nil {
				zap.L().Warn("failed to send telegram message", zap.Int64("chat_id", out.ChatID), zap.Error(err))
			}
		}
	}
}

var _ ports.Broadcaster = (*Mirror)(nil)
