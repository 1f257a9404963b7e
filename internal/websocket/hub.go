package websocket

import (
	"log"
	"sync"
)

// Hub tracks connected clients per user and fans pushed events out to
// every open connection the user holds.
type Hub struct {
	clients    map[string]map[*Client]bool
	push       chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// Event is a message pushed to one user's connections.
type Event struct {
	UserID  string                 `json:"user_id,omitempty"`
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		push:       make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes register/unregister/push events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			h.mu.Unlock()
			log.Printf("WebSocket client connected: user=%s", client.UserID)

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.UserID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("WebSocket client disconnected: user=%s", client.UserID)

		case event := <-h.push:
			h.mu.RLock()
			if clients, ok := h.clients[event.UserID]; ok {
				for client := range clients {
					select {
					case client.send <- event:
					default:
						close(client.send)
						delete(clients, client)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// PushToUser queues an event for every open connection of one user. The
// event is dropped when the queue is full; durable delivery is the
// notification table's job, this path is best effort.
func (h *Hub) PushToUser(userID string, payload map[string]interface{}) {
	event := &Event{
		UserID:  userID,
		Type:    "notification",
		Payload: payload,
	}

	select {
	case h.push <- event:
	default:
		log.Printf("Push channel full, dropping event for user %s", userID)
	}
}

// IsOnline reports whether a user has at least one open connection.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}
