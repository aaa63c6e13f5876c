package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"taskease/internal/adapter/http/dto"
	"taskease/internal/adapter/http/mapper"
	"taskease/internal/adapter/http/middleware"
	"taskease/internal/adapter/http/validation"
	"taskease/internal/app/service"
	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
	"taskease/pkg/apierrors"
)

// ChatHub owns the live world-chat connections.
type ChatHub interface {
	Serve(ctx context.Context, conn *websocket.Conn, email string, history func(context.Context) ([]domain.ChatMessage, error), onMessage func(context.Context, string) error)
}

type ChatHandler struct {
	chatService ports.ChatService
	hub         ChatHub
	upgrader    websocket.Upgrader
}

func NewChatHandler(chatService ports.ChatService, hub ChatHub, allowedOrigins []string) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		hub:         hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	var query dto.ChatHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, apierrors.MsgInvalidChatQuery)
		return
	}

	before, limit, err := validation.ParseChatQuery(query)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidChatQuery, "failed to validate chat query")
		return
	}

	messages, err := h.chatService.History(c.Request.Context(), before, limit)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListChat, "failed to list chat messages")
		return
	}

	c.JSON(http.StatusOK, mapper.ToChatMessageItems(messages))
}

func (h *ChatHandler) Connect(c *gin.Context) {
	email := middleware.GetEmail(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already wrote the HTTP error
		zap.L().Warn("websocket upgrade failed", zap.String("email", email), zap.Error(err))
		return
	}

	history := func(ctx context.Context) ([]domain.ChatMessage, error) {
		return h.chatService.History(ctx, time.Time{}, service.InitialHistorySize)
	}
	h.hub.Serve(c.Request.Context(), conn, email, history, func(ctx context.Context, text string) error {
		_, err := h.chatService.PostUserMessage(ctx, email, text)
		return err
	})
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, candidate := range allowed {
			if candidate == "*" || strings.EqualFold(candidate, origin) {
				return true
			}
		}
		return false
	}
}
