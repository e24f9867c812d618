// file: websocket/connection.go
package websocket

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"english-hub/logger"
	"english-hub/models"
)

// WSConn is the part of *websocket.Conn a Connection uses.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	Close() error
	RemoteAddr() net.Addr
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Connection is one browser tab watching one club.
type Connection struct {
	conn   WSConn
	send   chan []byte
	clubID string
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// ServeWs upgrades the request and subscribes it to the club named by ?clubId=.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	clubID := r.URL.Query().Get("clubId")
	if _, ok := models.LookupClub(clubID); !ok {
		logger.Warn.Printf("[ServeWs] unknown club %q; rejecting WebSocket connection", clubID)
		http.Error(w, "Unknown club", http.StatusBadRequest)
		return
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written an error response
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return
	}
	logger.Info.Printf("[ServeWs] subscribed remoteAddr=%v, club=%q", r.RemoteAddr, clubID)

	c := &Connection{
		conn:   wsConn,
		send:   make(chan []byte, 16),
		clubID: clubID,
	}
	h.register(c)

	go h.readPump(c)
	go c.writePump()
}

// readPump drains inbound frames so pongs and closes are processed.
// Browsers have nothing to say on this channel.
func (h *Hub) readPump(c *Connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, _, err := c.conn.ReadMessage()
		if err != nil {
			logger.Debug.Printf("[readPump] closing %v: %v", c.conn.RemoteAddr(), err)
			return
		}
		logger.Debug.Printf("[readPump] ignoring inbound messageType=%d from %v", messageType, c.conn.RemoteAddr())
	}
}

// writePump delivers queued notices and sends periodic pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn.Printf("[writePump] Error writing to %v: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn.Printf("[writePump] Ping error for %v: %v", c.conn.RemoteAddr(), err)
				return
			}
		}
	}
}
