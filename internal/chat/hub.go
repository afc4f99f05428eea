package chat

import (
	"log"
	"sync"

	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/gorilla/websocket"
)

// Hub tracks one live websocket connection per user and pushes new
// messages to connected receivers. Delivery is best-effort: the message
// row is already persisted, and an offline receiver simply fetches it
// later.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*websocket.Conn
}

// NewHub returns an empty connection registry.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*websocket.Conn)}
}

// Connect registers the user's connection, replacing any previous one.
func (h *Hub) Connect(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	old := h.conns[userID]
	h.conns[userID] = conn
	h.mu.Unlock()

	if old != nil {
		old.Close()
	}
}

// Disconnect drops the user's connection if it is still the given one.
func (h *Hub) Disconnect(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	if h.conns[userID] == conn {
		delete(h.conns, userID)
	}
	h.mu.Unlock()
}

// Connected reports whether the user currently holds a live connection.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

// Deliver pushes a message to its receiver's connection, if any.
func (h *Hub) Deliver(msg *models.Message) {
	h.mu.RLock()
	conn := h.conns[msg.ReceiverID]
	h.mu.RUnlock()

	if conn == nil {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("chat: deliver to %s: %v", msg.ReceiverID, err)
		h.Disconnect(msg.ReceiverID, conn)
		conn.Close()
	}
}
