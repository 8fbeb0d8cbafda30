package model

import "time"

// TestResult is one submitted assessment
type TestResult struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	UserID         string    `json:"userId" bson:"userId"`
	Topic          string    `json:"topic" bson:"topic"`
	Score          int       `json:"score" bson:"score"`
	TotalQuestions int       `json:"totalQuestions" bson:"totalQuestions"`
	Percentage     float64   `json:"percentage" bson:"percentage"`
	Timestamp      time.Time `json:"timestamp" bson:"timestamp"`
}

// SubmitTestRequest is the body of POST /api/user/{id}/submit_test
type SubmitTestRequest struct {
	Topic          string `json:"topic" validate:"required"`
	Score          int    `json:"score" validate:"min=0,ltefield=TotalQuestions"`
	TotalQuestions int    `json:"totalQuestions" validate:"required,gt=0"`
}

// Percentage returns score as a percentage of total
func (r *SubmitTestRequest) Percentage() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions) * 100
}
