package domain

import (
	"fmt"
	"strings"
	"time"
)

// Delivery flags stored in Question.DeliveredCount.
const (
	NotDelivered = 0
	Delivered    = 1
)

// Question is a generated question/answer pair that belongs to a document.
// DeliveredCount is decided once, at generation time, and never revisited.
type Question struct {
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	DocumentID     int64     `json:"document_id"`
	DeliveredCount int       `json:"delivered_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewQuestion creates a Question stamped with now for both timestamps.
// Returns an error if validation fails.
func NewQuestion(documentID int64, question, answer string, delivered int, now time.Time) (*Question, error) {
	q := &Question{
		Question:       question,
		Answer:         answer,
		DocumentID:     documentID,
		DeliveredCount: delivered,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks if the Question has valid data.
func (q *Question) Validate() error {
	if q.DocumentID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDocumentID, q.DocumentID)
	}

	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: question", ErrEmptyContent)
	}

	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("%w: answer", ErrEmptyContent)
	}

	if q.DeliveredCount != NotDelivered && q.DeliveredCount != Delivered {
		return ErrInvalidDeliveredCount
	}

	return nil
}

// IsDelivered reports whether the question is shown to the user.
func (q *Question) IsDelivered() bool {
	return q.DeliveredCount == Delivered
}
