package board

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
)

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Serve upgrades the connection and runs the pumps. Boards are public
// displays; the endpoint takes no credentials.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Boards live on local displays and dev tunnels with shifting
		// origins.
		InsecureSkipVerify: true,
	})
	if err != nil {
		slog.Warn("board websocket accept failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn)
	h.hub.Register(client)

	go client.WritePump(r.Context())
	client.ReadPump(r.Context())
}
