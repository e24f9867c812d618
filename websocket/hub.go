// Package websocket pushes "new activity" notices to browsers watching a club page.
// The notice carries no feed data; pages re-read the feed through the gateway.
// file: websocket/hub.go
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"english-hub/logger"
	"english-hub/models"
)

// Notice is the JSON pushed to subscribers.
type Notice struct {
	Action     string `json:"action"`
	ClubID     string `json:"clubId"`
	ActivityID string `json:"activityId,omitempty"`
}

type envelope struct {
	clubID string
	msg    []byte
}

// Hub tracks the open connections per club and fans notices out to them.
type Hub struct {
	mu          sync.RWMutex
	connections map[*Connection]bool

	broadcast chan envelope
	upgrader  websocket.Upgrader
}

// NewHub creates a hub. Only browsers from allowedOrigin may connect; an empty
// origin allows all.
func NewHub(allowedOrigin string) *Hub {
	h := &Hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan envelope, 64),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin
		},
	}
	return h
}

// Run distributes queued notices until done is closed.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case env := <-h.broadcast:
			h.broadcastToClub(env.clubID, env.msg)
		}
	}
}

// ActivityPosted queues an "activityPosted" notice for the club's subscribers.
func (h *Hub) ActivityPosted(clubID string, activity models.Activity) {
	msg, err := json.Marshal(Notice{Action: "activityPosted", ClubID: clubID, ActivityID: activity.ID})
	if err != nil {
		logger.Error.Printf("[Hub.ActivityPosted] Error marshalling notice: %v", err)
		return
	}
	select {
	case h.broadcast <- envelope{clubID: clubID, msg: msg}:
		logger.Debug.Printf("[Hub.ActivityPosted] queued notice for club=%s", clubID)
	default:
		logger.Warn.Printf("[Hub.ActivityPosted] broadcast queue full; dropping notice for club=%s", clubID)
	}
}

// Subscribers counts the open connections watching clubID.
func (h *Hub) Subscribers(clubID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for c := range h.connections {
		if c.clubID == clubID {
			n++
		}
	}
	return n
}

func (h *Hub) register(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
}

func (h *Hub) unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// broadcastToClub sends a message to all connections watching clubID.
func (h *Hub) broadcastToClub(clubID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if c.clubID != clubID {
			continue
		}
		select {
		case c.send <- message:
		default:
			logger.Warn.Printf("Dropping message for connection %v", c.conn.RemoteAddr())
		}
	}
}
