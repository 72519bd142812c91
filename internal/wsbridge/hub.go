package wsbridge

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans one table's events out to every Connection attached to it,
// matching the teacher's Worker.clients bookkeeping (framework/conn/
// worker.go/manager.go) but scoped per table instead of per node process.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	log         *logging.Logger
}

func NewHub() *Hub {
	return &Hub{connections: make(map[string]*Connection), log: logging.New("wsbridge")}
}

// Upgrade promotes an incoming HTTP request to a websocket connection,
// registers it under connID, and starts its pumps. onEvent receives
// every event the client sends (e.g. its chosen discard/call).
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request, connID string, onEvent func(eventschema.Event)) (*Connection, error) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	conn := NewConnection(connID, wsConn, onEvent)
	h.mu.Lock()
	h.connections[connID] = conn
	h.mu.Unlock()
	conn.Run()
	return conn, nil
}

// Remove drops connID from the hub. A Connection that closes is not removed
// automatically; Remove must be called for it.
func (h *Hub) Remove(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, connID)
}

// Broadcast sends ev to every attached connection, the sink side of an
// internal/eventbus.Subscribe callback.
func (h *Hub) Broadcast(ev eventschema.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.connections {
		conn.Send(ev)
	}
}

// Count reports the number of attached connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
