package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/quizgen/internal/domain"
)

// TypeDocumentQueued is the event type of a document waiting to be processed.
const TypeDocumentQueued = "document_queued"

// TaskRequestEvent represents a request to create a background task.
// It contains the necessary information for task creation without
// direct dependencies on the task package.
type TaskRequestEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates the task type that should be created
	Type string `json:"type"`

	// Payload contains the task-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskRequestEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// ProcessingRequest decodes the payload of a document_queued event.
func (e *TaskRequestEvent) ProcessingRequest() (domain.ProcessingRequest, error) {
	if e.Type != TypeDocumentQueued {
		return domain.ProcessingRequest{}, fmt.Errorf("%w: %q", ErrUnexpectedEventType, e.Type)
	}

	var req domain.ProcessingRequest
	if err := e.UnmarshalPayload(&req); err != nil {
		return domain.ProcessingRequest{}, fmt.Errorf("failed to decode processing request: %w", err)
	}
	return req, nil
}

// NewTaskRequestEvent creates a new TaskRequestEvent with the specified type and payload.
func NewTaskRequestEvent(eventType string, payload interface{}) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewDocumentQueuedEvent wraps a processing request in an event.
func NewDocumentQueuedEvent(req domain.ProcessingRequest) (*TaskRequestEvent, error) {
	return NewTaskRequestEvent(TypeDocumentQueued, req)
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the intake surface to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
