package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/phrazzld/quizgen/internal/generation"
)

// PredictorResponse is one canned reply of a MockPredictor.
type PredictorResponse struct {
	Raw json.RawMessage
	Err error
}

// MockPredictor implements generation.StructuredPredictor for testing.
// Replies are served from Responses in call order; once they run out the
// default Raw/Err pair is returned.
type MockPredictor struct {
	// PredictStructuredFn allows test cases to mock the PredictStructured behavior
	PredictStructuredFn func(ctx context.Context, messages []generation.Message) (json.RawMessage, error)

	// Responses are returned one per call, in order
	Responses []PredictorResponse

	// Default response values
	Raw json.RawMessage
	Err error

	// Call tracking for verification
	Calls struct {
		mu       sync.Mutex
		Count    int
		Messages [][]generation.Message
	}
}

// PredictStructured implements the generation.StructuredPredictor interface
func (m *MockPredictor) PredictStructured(
	ctx context.Context,
	messages []generation.Message,
) (json.RawMessage, error) {
	m.Calls.mu.Lock()
	call := m.Calls.Count
	m.Calls.Count++
	m.Calls.Messages = append(m.Calls.Messages, messages)
	m.Calls.mu.Unlock()

	if m.PredictStructuredFn != nil {
		return m.PredictStructuredFn(ctx, messages)
	}

	if call < len(m.Responses) {
		return m.Responses[call].Raw, m.Responses[call].Err
	}
	return m.Raw, m.Err
}

// CallCount returns how many times PredictStructured was called.
func (m *MockPredictor) CallCount() int {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	return m.Calls.Count
}

// NewMockPredictorWithResponses creates a MockPredictor that replies with
// raw JSON strings in order.
func NewMockPredictorWithResponses(replies ...string) *MockPredictor {
	m := &MockPredictor{}
	for _, r := range replies {
		m.Responses = append(m.Responses, PredictorResponse{Raw: json.RawMessage(r)})
	}
	return m
}

// InvalidJSON returns a response that simulates an undecodable model reply.
func InvalidJSON(raw string) PredictorResponse {
	return PredictorResponse{Err: &generation.InvalidJSONResponseError{Raw: raw}}
}

// Failure returns a response that simulates a failed model call.
func Failure(err error) PredictorResponse {
	return PredictorResponse{Err: err}
}

// Reply returns a successful response carrying raw JSON.
func Reply(raw string) PredictorResponse {
	return PredictorResponse{Raw: json.RawMessage(raw)}
}
