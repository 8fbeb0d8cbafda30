package ws

import (
	"sync"

	"github.com/goccy/go-json"

	"aiacademy/internal/logger"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgSession   MessageType = "session"
	MsgTick      MessageType = "tick"
	MsgSubmitted MessageType = "submitted"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection is one client watching a quiz session
type Connection struct {
	SessionID string
	UserID    string
	Send      chan []byte
}

// NewConnection creates a connection with a buffered send queue
func NewConnection(sessionID, userID string) *Connection {
	return &Connection{SessionID: sessionID, UserID: userID, Send: make(chan []byte, 256)}
}

type broadcastMessage struct {
	sessionID string
	data      []byte
}

// Hub fans quiz events out to the connections of each session.
// The run loop owns the connection map.
type Hub struct {
	sessions map[string]map[*Connection]struct{}
	mu       sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *broadcastMessage
	done       chan struct{}
	closeOnce  sync.Once

	log logger.Logger
}

// NewHub creates a new WebSocket hub and starts its loop
func NewHub(log logger.Logger) *Hub {
	h := &Hub{
		sessions:   make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *broadcastMessage, 256),
		done:       make(chan struct{}),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.sessions[conn.SessionID] == nil {
				h.sessions[conn.SessionID] = make(map[*Connection]struct{})
			}
			h.sessions[conn.SessionID][conn] = struct{}{}
			h.mu.Unlock()
			h.log.Debug("ws: connected", map[string]interface{}{"session": conn.SessionID, "uid": conn.UserID})

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.sessions[conn.SessionID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.sessions, conn.SessionID)
					}
				}
			}
			h.mu.Unlock()
			h.log.Debug("ws: disconnected", map[string]interface{}{"session": conn.SessionID, "uid": conn.UserID})

		case msg := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.sessions[msg.sessionID] {
				select {
				case conn.Send <- msg.data:
				default:
					// slow client, drop
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for id, conns := range h.sessions {
				for conn := range conns {
					close(conn.Send)
				}
				delete(h.sessions, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// BroadcastToSession sends an event to every client of a session (implements service.Broadcaster)
func (h *Hub) BroadcastToSession(sessionID, msgType string, payload interface{}) {
	data, err := Encode(MessageType(msgType), payload)
	if err != nil {
		h.log.Error("ws: could not encode message", err, map[string]interface{}{"type": msgType})
		return
	}
	select {
	case h.broadcast <- &broadcastMessage{sessionID: sessionID, data: data}:
	case <-h.done:
	}
}

// Subscribers returns the number of clients watching a session
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// Close stops the hub and closes every connection
func (h *Hub) Close() error {
	h.closeOnce.Do(func() { close(h.done) })
	return nil
}

// Encode wraps payload in the message envelope
func Encode(msgType MessageType, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: msgType, Payload: data})
}
