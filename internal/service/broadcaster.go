package service

import "aiacademy/internal/model"

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
	Subscribers(sessionID string) int
}

// Quiz event types sent over WebSocket
const (
	EventTick      = "tick"
	EventSubmitted = "submitted"
)

// TickEvent is sent once per second while a quiz runs
type TickEvent struct {
	Remaining int    `json:"remaining"`
	Clock     string `json:"clock"`
}

// SubmittedEvent is sent once when a quiz is scored
type SubmittedEvent struct {
	Result model.QuizResult `json:"result"`
	Forced bool             `json:"forced"` // time ran out
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastToSession(string, string, interface{}) {}
func (noopBroadcaster) Subscribers(string) int                         { return 0 }
