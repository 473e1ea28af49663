package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"swapwatch/internal/application"
	"swapwatch/internal/domain"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var _ application.Reporter = (*Hub)(nil)

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub streams monitor events to connected websocket clients. A client that
// cannot keep up loses events rather than slowing the monitors down.
type Hub struct {
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	buffer       int
	log          *zap.Logger

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

func NewHub(log *zap.Logger, buffer int, writeTimeout time.Duration) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = 32
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		writeTimeout: writeTimeout,
		buffer:       buffer,
		log:          log,
		clients:      map[*wsClient]struct{}{},
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws.upgrade_failed", zap.Error(err))
		return
	}
	c := &wsClient{conn: conn, send: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.log.Info("ws.connected", zap.String("remote", r.RemoteAddr))

	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop discards client messages and returns once the peer goes away.
func (h *Hub) readLoop(c *wsClient) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *wsClient) {
	defer c.conn.Close()
	for msg := range c.send {
		if h.writeTimeout > 0 {
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug("ws.write_failed", zap.Error(err))
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) Report(_ context.Context, e domain.Event) {
	msg, err := json.Marshal(toEventView(e))
	if err != nil {
		h.log.Warn("ws.encode_failed", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Debug("ws.client_lagging", zap.String("monitor_id", e.MonitorID))
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
