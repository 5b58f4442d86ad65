package realtime

import (
	"encoding/json"
	"sync"

	"github.com/jwhan/playgrid-backend/pkg/logger"
)

// Notification types pushed to connected clients.
const (
	NotifFriendRequest  = "friend_request"
	NotifFriendAccepted = "friend_accepted"
	NotifGameNews       = "game_news"
)

// Notification is the JSON payload pushed over a client's socket.
type Notification struct {
	Type   string `json:"type"`
	UserID uint   `json:"user_id,omitempty"`
	GameID uint   `json:"game_id,omitempty"`
	NewsID uint   `json:"news_id,omitempty"`
	Title  string `json:"title,omitempty"`
}

// Client is one connected socket session for a user.
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// Hub tracks connected clients and routes notifications to them. A user may
// hold several sessions at once.
type Hub struct {
	clients    map[uint][]*Client
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
	}
}

// Run processes client registration. Call it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("Realtime client connected", map[string]interface{}{
				"user_id": client.UserID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if sessions, ok := h.clients[client.UserID]; ok {
				remaining := make([]*Client, 0, len(sessions))
				for _, c := range sessions {
					if c != client {
						remaining = append(remaining, c)
					}
				}
				if len(remaining) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = remaining
				}
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("Realtime client disconnected", map[string]interface{}{
				"user_id": client.UserID,
			})
		}
	}
}

// Register adds a client session.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client session.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Notify pushes a notification to every session of one user. A user with no
// sessions is a no-op.
func (h *Hub) Notify(userID uint, notification Notification) {
	data, err := json.Marshal(notification)
	if err != nil {
		logger.Error("Failed to marshal notification", err, nil)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[userID] {
		h.send(client, data)
	}
}

// Broadcast pushes a notification to every connected session.
func (h *Hub) Broadcast(notification Notification) {
	data, err := json.Marshal(notification)
	if err != nil {
		logger.Error("Failed to marshal notification", err, nil)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sessions := range h.clients {
		for _, client := range sessions {
			h.send(client, data)
		}
	}
}

func (h *Hub) send(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		// Send buffer full; drop the session rather than block the hub.
		go h.Unregister(client)
		logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
			"user_id": client.UserID,
		})
	}
}
