// Package liveview pushes field refreshes and notifications to connected
// review pages over WebSocket.
package liveview

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/phrazzld/scry-assist/internal/redact"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
)

// client is one connected review page.
type client struct {
	conn *websocket.Conn
	send chan Message
}

// Hub manages connected review pages and broadcasts messages to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	logger  *slog.Logger
}

// NewHub creates a Hub with no clients.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger.With("component", "liveview"),
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("review page connected")
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	h.logger.Debug("review page disconnected")
}

// ClientCount returns the number of connected pages.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues msg for every connected page and returns how many pages
// accepted it. A page whose buffer is full misses the message.
func (h *Hub) Broadcast(msg Message) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.clients {
		select {
		case c.send <- msg:
			delivered++
		default:
			h.logger.Warn("client send buffer full, dropping message", "type", string(msg.Type))
		}
	}
	return delivered
}

// RefreshField replaces the displayed HTML of field on every connected page.
// It reports false, without error, when no page received the update.
func (h *Hub) RefreshField(ctx context.Context, field, html string) bool {
	script, err := FieldUpdateScript(field, html)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build field update script", "field", field, "error", err)
		return false
	}
	return h.Broadcast(Message{Type: MessageEval, Script: script}) > 0
}

// Tooltip shows a transient status message.
func (h *Hub) Tooltip(ctx context.Context, message string) {
	h.notify(ctx, LevelTooltip, message)
}

// Inform shows a blocking informational dialog.
func (h *Hub) Inform(ctx context.Context, message string) {
	h.notify(ctx, LevelInfo, message)
}

func (h *Hub) notify(ctx context.Context, level, message string) {
	n := h.Broadcast(Message{Type: MessageNotice, Level: level, Message: message})
	h.logger.DebugContext(ctx, "notice sent", "level", level, "pages", n)
}

// ServeHTTP upgrades the request to a WebSocket and streams messages until
// the page disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Error("websocket accept failed", "error", redact.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan Message, sendBuffer)}
	h.register(c)

	ctx := r.Context()
	done := make(chan struct{})
	go func() {
		h.writePump(ctx, c)
		close(done)
	}()

	// blocks until the page goes away
	readPump(ctx, c.conn)

	h.unregister(c)
	_ = conn.Close(websocket.StatusNormalClosure, "")
	<-done
}

func (h *Hub) writePump(ctx context.Context, c *client) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, c.conn, msg)
			cancel()
			if err != nil {
				h.logger.Debug("websocket write error", "error", err)
				return
			}
		}
	}
}

// readPump drains the connection; pages never send anything we act on.
func readPump(ctx context.Context, conn *websocket.Conn) {
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}
