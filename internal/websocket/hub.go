// Package websocket pushes committed floor-plan changes to rendering clients.
// A client subscribes to one floor and receives every event of that floor.
package websocket

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// broadcastBuffer bounds the events waiting for the hub loop.
const broadcastBuffer = 256

var (
	errClientGone = errors.New("websocket: client not connected")
	errBufferFull = errors.New("websocket: send buffer full")
)

type envelope struct {
	floorID string
	data    []byte
}

// Hub maintains the set of active clients and fans floor events out to them
type Hub struct {
	// Registered clients map: ClientID -> Client
	clients map[string]*Client

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	// Floor events waiting to be delivered
	broadcast chan envelope

	quit chan struct{}

	// Client message IDs already handled
	seen *deduplicator

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, broadcastBuffer),
		quit:       make(chan struct{}),
		seen:       newDeduplicator(),
		clients:    make(map[string]*Client),
	}
}

// Run starts the hub's main loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			// If a client reconnects under the same id, close the old connection
			if old, ok := h.clients[client.ID]; ok && old != client {
				close(old.send)
			}
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Debugf("🔌 Client connected: %s (floor %q)", client.ID, client.Floor())

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.ID]; ok && current == client {
				delete(h.clients, client.ID)
				close(client.send)
				log.Debugf("📴 Client disconnected: %s", client.ID)
			}
			h.mu.Unlock()

		case env := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if client.Floor() != env.floorID {
					continue
				}
				select {
				case client.send <- env.data:
				default:
					// Buffer full or client dead
					log.Warnf("⚠️ Dropping event for slow client %s", client.ID)
				}
			}
			h.mu.RUnlock()

		case <-h.quit:
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop ends Run and disconnects every client.
func (h *Hub) Stop() {
	close(h.quit)
}

// Publish queues a message for every client subscribed to floorID.
func (h *Hub) Publish(floorID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Errorf("❌ Error marshaling event: %v", err)
		return
	}
	select {
	case h.broadcast <- envelope{floorID: floorID, data: data}:
	default:
		log.Warnf("⚠️ Event queue full, dropping event for floor %s", floorID)
	}
}

// sendRaw delivers msg unless the client is gone or its buffer is full. The
// read lock keeps Run from closing the channel underneath the send.
func (h *Hub) sendRaw(c *Client, msg []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if current, ok := h.clients[c.ID]; !ok || current != c {
		return errClientGone
	}
	select {
	case c.send <- msg:
		return nil
	default:
		return errBufferFull
	}
}

// ClientCount returns the number of connected clients, optionally limited to
// the subscribers of one floor.
func (h *Hub) ClientCount(floorID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if floorID == "" {
		return len(h.clients)
	}
	n := 0
	for _, c := range h.clients {
		if c.Floor() == floorID {
			n++
		}
	}
	return n
}
