package board

import (
	"encoding/json"
	"testing"
	"time"
)

// registerTestClient adds a connectionless client directly so hub behavior
// can be tested without websocket plumbing.
func registerTestClient(t *testing.T, h *Hub, id string) *Client {
	t.Helper()
	c := &Client{ID: id, hub: h, send: make(chan []byte, 16)}
	h.addClient(c)
	return c
}

func TestMenuChangedReachesAllClients(t *testing.T) {
	h := NewHub()
	a := registerTestClient(t, h, "board-a")
	b := registerTestClient(t, h, "board-b")

	h.MenuChanged()

	for _, c := range []*Client{a, b} {
		select {
		case data := <-c.send:
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("unmarshal broadcast: %v", err)
			}
			if msg.Type != TypeMenuUpdated {
				t.Fatalf("expected %q, got %q", TypeMenuUpdated, msg.Type)
			}
		case <-time.After(time.Second):
			t.Fatalf("client %s received nothing", c.ID)
		}
	}
}

func TestFullSendBufferDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	c := registerTestClient(t, h, "board-slow")
	for i := 0; i < cap(c.send); i++ {
		c.send <- []byte("x")
	}

	done := make(chan struct{})
	go func() {
		h.MenuChanged()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a saturated client")
	}
}

func TestClientCountTracksMembership(t *testing.T) {
	h := NewHub()
	if h.ClientCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", h.ClientCount())
	}
	c := registerTestClient(t, h, "board-a")
	if h.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", h.ClientCount())
	}

	h.removeClient(c)
	if h.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after removal, got %d", h.ClientCount())
	}
	if _, ok := <-c.send; ok {
		t.Fatal("expected send channel closed on removal")
	}

	// Removing twice is safe.
	h.removeClient(c)
}
