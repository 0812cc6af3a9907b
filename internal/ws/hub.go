package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// client owns one connection's writes. Only its writer goroutine touches conn for writing.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans session updates out to every websocket watching that session.
// Send only queues under the lock, so a slow socket never holds up other sessions.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[*websocket.Conn]*client)}
}

// Join registers conn and queues the snapshot as its first message. The snapshot is taken
// under the hub lock, so every Send that follows is delivered after it.
// If snapshot fails, conn is not registered.
func (h *Hub) Join(sessionID string, conn *websocket.Conn, snapshot func() (Message, error)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	first, err := snapshot()
	if err != nil {
		return err
	}
	data, err := json.Marshal(first)
	if err != nil {
		return err
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	c.send <- data
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*websocket.Conn]*client)
	}
	h.sessions[sessionID][conn] = c
	go h.writer(sessionID, c)
	log.Printf("ws: client joined session %s (total: %d)", sessionID, len(h.sessions[sessionID]))
	return nil
}

func (h *Hub) writer(sessionID string, c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			h.Remove(sessionID, c.conn)
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// Remove unregisters conn; its writer flushes nothing further and closes it.
func (h *Hub) Remove(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(sessionID, conn)
}

// drop requires h.mu.
func (h *Hub) drop(sessionID string, conn *websocket.Conn) {
	conns, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	if c, ok := conns[conn]; ok {
		delete(conns, conn)
		close(c.send)
	}
	if len(conns) == 0 {
		delete(h.sessions, sessionID)
	}
}

// Count reports how many connections watch a session.
func (h *Hub) Count(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[sessionID])
}

// Send queues msg for every connection of the session. A connection whose queue is full
// is too slow to keep up and is dropped.
func (h *Hub) Send(sessionID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, c := range h.sessions[sessionID] {
		select {
		case c.send <- data:
		default:
			log.Printf("ws: dropping slow client of session %s", sessionID)
			h.drop(sessionID, conn)
		}
	}
}

// Close drops all connections of a session.
func (h *Hub) Close(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.sessions[sessionID] {
		h.drop(sessionID, conn)
	}
}
