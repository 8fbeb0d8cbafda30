package model

import "time"

// QuestionStatus is the palette state of a question
type QuestionStatus string

const (
	StatusNotAnswered     QuestionStatus = "not-answered"
	StatusAnswered        QuestionStatus = "answered"
	StatusMarkedForReview QuestionStatus = "marked-for-review"
)

// PaletteEntry is one button of the question palette
type PaletteEntry struct {
	Index   int            `json:"index"`
	Status  QuestionStatus `json:"status"`
	Current bool           `json:"current"`
}

// QuizResult is reported to the test taker on submission
type QuizResult struct {
	Score     int `json:"score"`
	Attempted int `json:"attempted"`
	Total     int `json:"total"`
}

// QuizSessionView is the client-facing snapshot of a quiz session.
// It is also the document cached in Redis.
type QuizSessionView struct {
	ID               string         `json:"id"`
	UserID           string         `json:"userId"`
	Topic            string         `json:"topic"`
	TopicName        string         `json:"topicName"`
	Current          int            `json:"current"`
	Total            int            `json:"total"`
	Question         *QuestionView  `json:"question,omitempty"`
	Pending          *int           `json:"pending"`
	Selections       []*int         `json:"selections"`
	Palette          []PaletteEntry `json:"palette"`
	RemainingSeconds int            `json:"remainingSeconds"`
	Clock            string         `json:"clock"`
	Submitted        bool           `json:"submitted"`
	Result           *QuizResult    `json:"result,omitempty"`
	StartedAt        time.Time      `json:"startedAt"`
}

// MoveResponse wraps a view after a navigating action
type MoveResponse struct {
	Session *QuizSessionView `json:"session"`
	AtEnd   bool             `json:"atEnd"`
	Notice  string           `json:"notice,omitempty"`
}

// StartQuizRequest is the body of POST /api/quiz/sessions
type StartQuizRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// SelectRequest is the body of PUT /api/quiz/sessions/{id}/selection
type SelectRequest struct {
	Option *int `json:"option" validate:"required,min=0"`
}
