package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("no handlers is not an error", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewTaskRequestEvent("test-event", map[string]string{"key": "value"})
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("every handler receives the event", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		first := &MockEventHandler{}
		second := &MockEventHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)
		assert.Equal(t, 2, emitter.HandlerCount())

		event, err := NewTaskRequestEvent("test-event", map[string]string{"key": "value"})
		require.NoError(t, err)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, 1, first.HandledCount)
		assert.Equal(t, 1, second.HandledCount)
		assert.Equal(t, event, first.LastEvent)
		assert.Equal(t, event, second.LastEvent)
	})

	t.Run("handler error is returned after all handlers ran", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		ok := &MockEventHandler{}
		failing := &MockEventHandler{HandlerError: errors.New("handler error")}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(ok)

		event, err := NewTaskRequestEvent("test-event", map[string]string{"key": "value"})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		require.Error(t, err)
		assert.Equal(t, "handler error", err.Error())
		assert.Equal(t, 1, failing.HandledCount)
		assert.Equal(t, 1, ok.HandledCount)
	})
}

func TestInMemoryEventEmitter_DocumentQueued(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	emitter := NewInMemoryEventEmitter(logger)
	handler := &MockEventHandler{}
	emitter.RegisterHandler(handler)

	req := domain.ProcessingRequest{StorageKey: "docs/a.txt", DocumentID: 42, Plan: domain.PlanPro}
	event, err := NewDocumentQueuedEvent(req)
	require.NoError(t, err)

	require.NoError(t, emitter.EmitEvent(context.Background(), event))
	require.Equal(t, 1, handler.HandledCount)

	got, err := handler.LastEvent.ProcessingRequest()
	require.NoError(t, err)
	assert.Equal(t, req, got)

	var entry map[string]any
	line := strings.SplitN(strings.TrimSpace(buf.String()), "\n", 2)[0]
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "emitting event", entry["msg"])
	assert.Equal(t, TypeDocumentQueued, entry["event_type"])
	assert.EqualValues(t, 42, entry["document_id"])
}
