package board

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message is the wire envelope pushed to connected boards.
type Message struct {
	Type string `json:"type"`
}

// TypeMenuUpdated tells boards the catalog changed; they refetch the menu
// tree rather than receiving a diff.
const TypeMenuUpdated = "menu.updated"

// Hub fans catalog change notifications out to every connected menu board.
// Boards are anonymous displays, so there are no rooms and no inbound
// message handling beyond keepalive.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// MenuChanged satisfies the catalog's notifier hook.
func (h *Hub) MenuChanged() {
	h.Broadcast(&Message{Type: TypeMenuUpdated})
}

func (h *Hub) Broadcast(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal board message", "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.enqueue(data)
	}
}

// ClientCount reports connected boards, for the health endpoint.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	slog.Info("board connected", "client", client.ID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ID)
	close(client.send)
	h.mu.Unlock()
	slog.Info("board disconnected", "client", client.ID)
}
