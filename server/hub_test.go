package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHelloOnConnect(t *testing.T) {
	h := NewHub(map[string]any{"width": 1.0})
	conn := dialHub(t, h)

	var msg map[string]any
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg["type"] != "hello" {
		t.Errorf("first message type = %v, want hello", msg["type"])
	}
	if msg["config"] == nil {
		t.Error("hello carries no config")
	}
}

func TestBroadcastReachesClient(t *testing.T) {
	h := NewHub(nil)
	conn := dialHub(t, h)

	for i := 0; i < 100 && h.ClientCount() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	h.Broadcast(map[string]any{"type": "snapshot", "tick": 42})

	var msg map[string]any
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg["type"] != "snapshot" {
		t.Errorf("message type = %v, want snapshot", msg["type"])
	}
	if msg["tick"] != float64(42) {
		t.Errorf("tick = %v, want 42", msg["tick"])
	}
}

func TestThreatCommandInvokesCallback(t *testing.T) {
	h := NewHub(nil)

	got := make(chan [2]float32, 1)
	h.OnThreat = func(x, y float32, active bool) {
		if active {
			got <- [2]float32{x, y}
		}
	}

	conn := dialHub(t, h)
	if err := conn.WriteJSON(map[string]any{"type": "threat", "x": 0.1, "y": -0.2}); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-got:
		if p[0] != 0.1 || p[1] != -0.2 {
			t.Errorf("threat point = %v, want (0.1, -0.2)", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("threat callback never fired")
	}
}

func TestDisconnectedClientDropped(t *testing.T) {
	h := NewHub(nil)
	conn := dialHub(t, h)

	for i := 0; i < 50 && h.ClientCount() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	if h.ClientCount() != 1 {
		t.Fatalf("client count = %d after connect, want 1", h.ClientCount())
	}

	conn.Close()
	for i := 0; i < 100 && h.ClientCount() > 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	if h.ClientCount() != 0 {
		t.Error("closed client still registered")
	}
}
