package model

import (
	"encoding/json"
	"time"
)

// Order statuses. Status only moves forward: ready -> graded.
const (
	OrderReady  = "ready"
	OrderGraded = "graded"
)

// Order tracks one test-generation request and its fulfillment status.
// Several orders may reference the same test; a submission against the
// test grades all of them.
type Order struct {
	OrderID   string    `json:"orderId"`
	TestID    string    `json:"testId"`
	Test      *Test     `json:"test"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Type      string    `json:"type"`
	Level     string    `json:"level"`
	TestURL   string    `json:"testUrl"`
}

// Answer is one item of a writing submission.
type Answer struct {
	QuestionID string `json:"questionId"`
	AnswerText string `json:"answerText" binding:"required"`
}

// Job is a graded submission. Result holds the grading JSON exactly as
// produced (or the {"raw": ...} fallback when the model returned prose).
// Jobs are immutable and never deleted.
type Job struct {
	JobID      string          `json:"jobId"`
	TestID     string          `json:"testId"`
	Type       string          `json:"type"`
	Answers    []Answer        `json:"answers,omitempty"`
	Transcript string          `json:"transcript,omitempty"`
	Result     json.RawMessage `json:"result"`
	CreatedAt  time.Time       `json:"createdAt"`
}
