// internal/socket/hub.go
package socket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks every connected WebSocket client. Auction events are fanned
// out to all of them; a client id keys each connection so a second login
// replaces the first.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection to the Hub.
func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientID] = conn
	log.Printf("WebSocket client registered: %s", clientID)
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[clientID]; ok {
		delete(h.clients, clientID)
		log.Printf("WebSocket client unregistered: %s", clientID)
	}
}

// Send delivers a message to one client. An offline client is not an error.
func (h *Hub) Send(clientID string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[clientID]
	if !ok {
		log.Printf("WebSocket client not found, could not send message: %s", clientID)
		return nil
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}

// Broadcast delivers a message to every connected client. Connections
// that fail to accept the write are dropped from the Hub.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for clientID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket broadcast to %s failed, dropping client: %v", clientID, err)
			conn.Close()
			delete(h.clients, clientID)
		}
	}
}
