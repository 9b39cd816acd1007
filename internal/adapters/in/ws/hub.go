// Package ws implements the Notifier port over websockets. Clients
// connect once per topic and receive best-effort "refresh" signals
// telling them to re-fetch; no payload ever crosses the socket.
package ws

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	headerUserID = "X-User-Id"

	// refreshSignal is the only message the hub ever sends.
	refreshSignal = "refresh"

	writeWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks belong to the gateway in front of this service.
		return true
	},
}

// connKey identifies a subscription: one user listening on one topic.
type connKey struct {
	userID string
	topic  string
}

// client wraps a connection with its write lock. Gorilla connections
// support at most one concurrent writer, so every write goes through
// sendRefresh while the lock is held.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) sendRefresh() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, []byte(refreshSignal))
}

// Hub is an internally locked registry of live websocket connections
// keyed by (user, topic). It implements ports.Notifier. Delivery is
// best-effort: a Notify for a user with no live connection is a silent
// no-op, and a failed write drops the connection rather than retrying.
type Hub struct {
	mu     sync.RWMutex
	conns  map[connKey]map[*client]struct{}
	logger *slog.Logger
}

// NewHub creates an empty connection registry.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		conns:  make(map[connKey]map[*client]struct{}),
		logger: logger.With("component", "ws-hub"),
	}
}

// ServeWS handles GET /ws?channel=<topic>. The authenticated user comes
// from the same identity header the JSON API uses; the topic comes from
// the channel query parameter. The connection stays registered until
// the client closes it or a write fails.
func (h *Hub) ServeWS(ctx echo.Context) error {
	userID := ctx.Request().Header.Get(headerUserID)
	if userID == "" {
		return ctx.NoContent(http.StatusUnauthorized)
	}
	topic := ctx.QueryParam("channel")
	if topic == "" {
		return ctx.NoContent(http.StatusBadRequest)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return nil
	}

	c := &client{conn: conn}
	h.register(userID, topic, c)
	go h.readLoop(userID, topic, c)
	return nil
}

// register adds a connection to the registry.
func (h *Hub) register(userID, topic string, c *client) {
	key := connKey{userID: userID, topic: topic}

	h.mu.Lock()
	if h.conns[key] == nil {
		h.conns[key] = make(map[*client]struct{})
	}
	h.conns[key][c] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("client connected", "user_id", userID, "topic", topic)
}

// unregister removes a connection and closes it.
func (h *Hub) unregister(userID, topic string, c *client) {
	key := connKey{userID: userID, topic: topic}

	h.mu.Lock()
	if set, ok := h.conns[key]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, key)
		}
	}
	h.mu.Unlock()

	_ = c.conn.Close()
	h.logger.Debug("client disconnected", "user_id", userID, "topic", topic)
}

// Notify sends a refresh signal to every connection the user holds on
// the topic. Connections whose write fails are dropped. Safe to call
// from any number of goroutines; each connection serializes its writes.
func (h *Hub) Notify(userID, topic string) {
	key := connKey{userID: userID, topic: topic}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.conns[key]))
	for c := range h.conns[key] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.sendRefresh(); err != nil {
			h.logger.Debug("dropping dead connection",
				"user_id", userID, "topic", topic, "error", err)
			h.unregister(userID, topic, c)
		}
	}
}

// readLoop drains client frames so close handshakes and protocol errors
// surface; the hub never acts on inbound data.
func (h *Hub) readLoop(userID, topic string, c *client) {
	defer h.unregister(userID, topic, c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
