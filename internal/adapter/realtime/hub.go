package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

const (
	EventInit    = "world-chat-init"
	EventMessage = "world-chat-message"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

var ErrHubClosed = errors.New("chat hub is closed")

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type messagePayload struct {
	ID        string  `json:"_id"`
	UserID    *string `json:"userId"`
	Username  string  `json:"username"`
	Message   string  `json:"message"`
	IsSystem  bool    `json:"isSystem"`
	Timestamp string  `json:"timestamp"`
}

type incomingMessage struct {
	Message string `json:"message"`
}

type outgoing struct {
	id      string
	payload []byte
}

type client struct {
	conn  *websocket.Conn
	email string
	send  chan outgoing
}

// Hub fans world-chat messages out to every connected client. A single
// goroutine (Run) owns the client set.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan outgoing
	done       chan struct{}
	clients    map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan outgoing, 64),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case out := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- out:
				default:
					zap.L().Warn("dropping chat message for slow client", zap.String("email", c.email))
				}
			}
		}
	}
}

// Publish broadcasts msg to every connected client.
func (h *Hub) Publish(ctx context.Context, msg domain.ChatMessage) error {
	payload, err := encodeEvent(EventMessage, toPayload(msg))
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- outgoing{id: msg.ID, payload: payload}:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Serve runs a client connection until it closes. The client is registered
// before history is loaded, so nothing broadcast in between is lost; the
// client first receives the history, then every broadcast not already in it.
// Each message the client sends is passed to onMessage.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, email string, history func(context.Context) ([]domain.ChatMessage, error), onMessage func(context.Context, string) error) {
	c := &client{conn: conn, email: email, send: make(chan outgoing, sendBuffer)}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()

	initial, err := history(ctx)
	if err != nil {
		zap.L().Error("failed to load chat history", zap.String("email", email), zap.Error(err))
		closeWithError(conn)
		return
	}

	payloads := make([]messagePayload, 0, len(initial))
	seen := make(map[string]struct{}, len(initial))
	for _, msg := range initial {
		payloads = append(payloads, toPayload(msg))
		seen[msg.ID] = struct{}{}
	}
	init, err := encodeEvent(EventInit, payloads)
	if err != nil {
		zap.L().Error("failed to encode chat history", zap.Error(err))
		closeWithError(conn)
		return
	}

	go c.writePump(init, seen)
	c.readPump(ctx, onMessage)
}

func closeWithError(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "chat history unavailable")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = conn.Close()
}

func (c *client) readPump(ctx context.Context, onMessage func(context.Context, string) error) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("chat connection closed unexpectedly", zap.String("email", c.email), zap.Error(err))
			}
			return
		}

		var in incomingMessage
		if err := json.Unmarshal(data, &in); err != nil {
			zap.L().Warn("ignoring malformed chat frame", zap.String("email", c.email), zap.Error(err))
			continue
		}
		if err := onMessage(ctx, in.Message); err != nil {
			zap.L().Warn("failed to post chat message", zap.String("email", c.email), zap.Error(err))
		}
	}
}

// writePump sends init first. Broadcasts queued while the history loaded are
// skipped when init already carries them.
func (c *client) writePump(init []byte, seen map[string]struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, init); err != nil {
		return
	}

	for {
		select {
		case out, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if _, dup := seen[out.id]; dup && out.id != "" {
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, out.payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func encodeEvent(eventType string, data any) ([]byte, error) {
	return json.Marshal(Event{Type: eventType, Data: data})
}

func toPayload(msg domain.ChatMessage) messagePayload {
	return messagePayload{
		ID:        msg.ID,
		UserID:    msg.UserID,
		Username:  msg.Username,
		Message:   msg.Message,
		IsSystem:  msg.IsSystem,
		Timestamp: msg.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

var _ ports.Broadcaster = (*Hub)(nil)
