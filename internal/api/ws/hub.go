package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans new audit activity out to connected operator dashboards.
type Hub struct {
	connections map[uuid.UUID]*websocket.Conn
	mu          sync.RWMutex
}

var globalHub *Hub
var once sync.Once

func GetHub() *Hub {
	once.Do(func() {
		globalHub = &Hub{
			connections: make(map[uuid.UUID]*websocket.Conn),
		}
	})
	return globalHub
}

func (h *Hub) Register(conn *websocket.Conn) uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New()
	h.connections[id] = conn
	log.Printf("[Hub] Client %s connected. Total connections: %d", id, len(h.connections))
	return id
}

func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, exists := h.connections[id]; exists {
		conn.Close()
		delete(h.connections, id)
		log.Printf("[Hub] Client %s disconnected. Total connections: %d", id, len(h.connections))
	}
}

// Broadcast sends msg to every connected client. Clients whose writes fail
// are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Hub] marshal broadcast: %v", err)
		return
	}

	h.mu.RLock()
	conns := make(map[uuid.UUID]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		conns[id] = conn
	}
	h.mu.RUnlock()

	for id, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Unregister(id)
		}
	}
}
