// Package telemetry broadcasts per-tick simulation snapshots to connected
// spectators over WebSocket, adapted from the teacher's ws hub: a
// registration/broadcast loop driven by channels, with a read-write mutex
// guarding the client and room maps, one room per run id.
package telemetry

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one spectator WebSocket connection watching a run.
type Client struct {
	ID    uuid.UUID
	RunID uuid.UUID
	Conn  *websocket.Conn
	Send  chan []byte
}

// Hub manages all spectator connections, grouped into per-run rooms.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	runRooms   map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMessage
}

type broadcastMessage struct {
	RunID   uuid.UUID
	Message interface{}
}

// NewHub creates an empty hub; call Run in a goroutine to start its loop.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		runRooms:   make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMessage, 256),
	}
}

// Run drives the hub's main loop until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case msg := <-h.broadcast:
			h.broadcastToRun(msg)
		}
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	if h.runRooms[c.RunID] == nil {
		h.runRooms[c.RunID] = make(map[*Client]bool)
	}
	h.runRooms[c.RunID][c] = true
	log.Printf("telemetry: client %s watching run %s", c.ID, c.RunID)
}

func (h *Hub) unregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.Send)
	if room, ok := h.runRooms[c.RunID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.runRooms, c.RunID)
		}
	}
}

func (h *Hub) broadcastToRun(msg broadcastMessage) {
	h.mu.RLock()
	room, ok := h.runRooms[msg.RunID]
	if !ok {
		h.mu.RUnlock()
		return
	}
	clients := make([]*Client, 0, len(room))
	for c := range room {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(msg.Message)
	if err != nil {
		log.Printf("telemetry: marshal broadcast: %v", err)
		return
	}
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
			h.unregister <- c
		}
	}
}

// BroadcastTick publishes a tick update to every spectator of a run.
func (h *Hub) BroadcastTick(runID uuid.UUID, update TickUpdate) {
	h.broadcast <- broadcastMessage{RunID: runID, Message: update}
}

// Register adds a new client to the hub.
func (h *Hub) Register(c *Client) { h.register <- c }

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// ClientCount returns the total number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RunClientCount returns the number of spectators watching a specific run.
func (h *Hub) RunClientCount(runID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room, ok := h.runRooms[runID]; ok {
		return len(room)
	}
	return 0
}

// TickUpdate is the per-tick payload broadcast to spectators.
type TickUpdate struct {
	Type  string `json:"type"`
	Tick  int    `json:"tick"`
	RunID uuid.UUID `json:"run_id"`
	Stats json.RawMessage `json:"stats"`
}
