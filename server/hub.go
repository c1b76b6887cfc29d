// Package server streams simulation snapshots to websocket clients and
// accepts viewer commands back.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// client is one connected viewer. The mutex serializes writes; broadcasts and
// the hello message can race otherwise.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub fans simulation snapshots out to all connected clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}

	upgrader websocket.Upgrader
	hello    any

	// OnThreat is called when a viewer places or clears a threat point.
	// Coordinates are in world units; active=false means cleared.
	OnThreat func(x, y float32, active bool)
	// OnPause is called when a viewer toggles the simulation.
	OnPause func(paused bool)
}

// NewHub creates a hub. The hello value is sent to every client on connect,
// typically the world bounds and config a viewer needs to interpret
// snapshots.
func NewHub(hello any) *Hub {
	return &Hub{
		clients:  make(map[*client]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		hello:    hello,
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends a value to every connected client, dropping clients whose
// connection fails.
func (h *Hub) Broadcast(v any) {
	h.mu.Lock()
	list := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		list = append(list, c)
	}
	h.mu.Unlock()

	for _, c := range list {
		if err := c.send(v); err != nil {
			slog.Warn("dropping websocket client", "error", err)
			h.mu.Lock()
			delete(h.clients, c)
			h.mu.Unlock()
			c.conn.Close()
		}
	}
}

// ServeHTTP upgrades the connection and runs the client's read loop.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	if h.hello != nil {
		if err := c.send(map[string]any{"type": "hello", "config": h.hello}); err != nil {
			slog.Warn("websocket hello failed", "error", err)
		}
	}

	go h.readLoop(c)
}

// readLoop handles viewer commands until the connection dies.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.conn.Close()
	}()

	for {
		var msg map[string]any
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		typeStr, _ := msg["type"].(string)
		switch typeStr {
		case "threat":
			x, okX := msg["x"].(float64)
			y, okY := msg["y"].(float64)
			if okX && okY && h.OnThreat != nil {
				h.OnThreat(float32(x), float32(y), true)
			}
		case "clear_threat":
			if h.OnThreat != nil {
				h.OnThreat(0, 0, false)
			}
		case "pause":
			enabled, ok := msg["enabled"].(bool)
			if ok && h.OnPause != nil {
				h.OnPause(enabled)
			}
		}
	}
}
