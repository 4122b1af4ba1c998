package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"aydamarket.com/api/internal/modules/orders"
)

// FeedMessage is one event pushed over the admin order feed.
type FeedMessage struct {
	Type  string       `json:"type"` // order_created|order_updated
	Order orders.Order `json:"order"`
}

// Hub fans order events out to connected admin websocket clients. A nil Hub
// is safe to broadcast on, which keeps handler tests free of websocket setup.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			// Admin auth already happened in middleware; the feed carries no
			// user-scoped secrets beyond what admin endpoints return anyway.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Serve handles GET /api/admin/orders/feed, upgrading to a websocket and
// holding the connection until the client goes away.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.log.Warn("order feed upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// The feed is one-way; reads only serve to notice the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast pushes msg to every connected client, dropping clients whose
// writes fail.
func (h *Hub) Broadcast(msg FeedMessage) {
	if h == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("order feed marshal failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
