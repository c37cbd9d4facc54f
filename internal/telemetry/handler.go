package telemetry

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StateProvider supplies the current full snapshot for a run, sent to a
// spectator immediately on connect so it doesn't have to wait for the
// next tick broadcast.
type StateProvider interface {
	LatestState(runID uuid.UUID) (interface{}, error)
}

// Handler upgrades HTTP connections to WebSocket spectator streams.
type Handler struct {
	hub   *Hub
	state StateProvider
}

// NewHandler creates a spectator connection handler.
func NewHandler(hub *Hub, state StateProvider) *Handler {
	return &Handler{hub: hub, state: state}
}

// ServeWS upgrades the request and registers a spectator for runID.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request, runID uuid.UUID) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("telemetry: upgrade failed: %v", err)
		return
	}

	client := &Client{ID: uuid.New(), RunID: runID, Conn: conn, Send: make(chan []byte, 256)}
	h.hub.Register(client)

	if h.state != nil {
		if snap, err := h.state.LatestState(runID); err == nil && snap != nil {
			if data, err := json.Marshal(snap); err == nil {
				client.Send <- data
			}
		}
	}

	go writePump(h.hub, client)
	go readPump(h.hub, client)
}

func readPump(hub *Hub, c *Client) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("telemetry: read error: %v", err)
			}
			break
		}
	}
}

func writePump(hub *Hub, c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.Send)
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
