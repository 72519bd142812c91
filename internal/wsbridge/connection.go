// Package wsbridge is this module's websocket transport for connected
// clients: a Connection wraps one gorilla/websocket.Conn's read/write
// pumps and heartbeat, and a Hub fans a table's eventschema.Event stream
// (sourced from internal/eventbus) out to every attached Connection.
// Grounded on framework/conn/connection.go's LongConnection (ping/pong
// deadlines, a buffered write channel drained by a dedicated goroutine,
// a read loop that stops on close or a fatal read error).
package wsbridge

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mahjongcore/internal/eventschema"
	"mahjongcore/internal/logging"
)

var (
	pongWait     = 30 * time.Second
	writeWait    = 10 * time.Second
	pingInterval = (pongWait * 9) / 10
)

// Connection owns one client's websocket lifecycle, matching the
// teacher's LongConnection but sending eventschema.Event as JSON text
// frames instead of the teacher's opaque binary ConnectionPack, since
// this module's clients are mahjong clients that want structured events,
// not a routed RPC envelope.
type Connection struct {
	ID        string
	conn      *websocket.Conn
	writeChan chan eventschema.Event
	onEvent   func(eventschema.Event) // inbound client actions, e.g. a discard choice
	closeChan chan struct{}
	closeOnce sync.Once
	log       *logging.Logger
}

func NewConnection(id string, conn *websocket.Conn, onEvent func(eventschema.Event)) *Connection {
	return &Connection{
		ID:        id,
		conn:      conn,
		writeChan: make(chan eventschema.Event, 64),
		onEvent:   onEvent,
		closeChan: make(chan struct{}),
		log:       logging.New("wsbridge").With("conn", id),
	}
}

// Run starts the read and write pumps, matching LongConnection.Run.
func (c *Connection) Run() {
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go c.readPump()
	go c.writePump()
}

func (c *Connection) readPump() {
	defer c.Close()
	for {
		select {
		case <-c.closeChan:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					c.log.Warn("read error: %v", err)
				}
				return
			}
			var ev eventschema.Event
			if err := json.Unmarshal(data, &ev); err != nil {
				c.log.Warn("malformed client event: %v", err)
				continue
			}
			if c.onEvent != nil {
				c.onEvent(ev)
			}
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case ev, ok := <-c.writeChan:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			line, err := eventschema.Encode(ev)
			if err != nil {
				c.log.Error("encode event: %v", err)
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, line); err != nil {
				c.log.Error("write error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closeChan:
			return
		}
	}
}

// Send enqueues ev for delivery, matching LongConnection.SendMessage.
func (c *Connection) Send(ev eventschema.Event) {
	select {
	case c.writeChan <- ev:
	case <-c.closeChan:
	}
}

func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.closeChan)
		c.conn.Close()
		c.log.Info("connection closed")
	})
}
