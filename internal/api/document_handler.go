package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/quizgen/internal/api/shared"
	"github.com/phrazzld/quizgen/internal/events"
	"github.com/phrazzld/quizgen/internal/platform/logger"
)

// AcceptedDocument identifies one queued record.
type AcceptedDocument struct {
	TaskID     uuid.UUID `json:"task_id"`
	DocumentID int64     `json:"document_id"`
	StorageKey string    `json:"s3_key"`
}

// AcceptedResponse is returned once every record of an envelope is queued.
type AcceptedResponse struct {
	Accepted []AcceptedDocument `json:"accepted"`
}

// DocumentHandler accepts queue envelopes of document messages.
type DocumentHandler struct {
	emitter      events.EventEmitter
	maxBodyBytes int64
}

// NewDocumentHandler creates a DocumentHandler. maxBodyBytes bounds the
// envelope size; non-positive uses shared.DefaultMaxBodyBytes.
func NewDocumentHandler(emitter events.EventEmitter, maxBodyBytes int64) *DocumentHandler {
	return &DocumentHandler{
		emitter:      emitter,
		maxBodyBytes: maxBodyBytes,
	}
}

// ReceiveEvents handles POST /v1/documents/events. The whole envelope is
// validated before anything is queued; a bad record rejects the batch.
// If emitting fails part way, the records before it stay queued.
func (h *DocumentHandler) ReceiveEvents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	body, err := shared.ReadBody(w, r, h.maxBodyBytes)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	requests, err := events.ParseEnvelope(body)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	accepted := make([]AcceptedDocument, 0, len(requests))
	for _, req := range requests {
		event, err := events.NewDocumentQueuedEvent(req)
		if err != nil {
			respondWithMappedError(w, r, err)
			return
		}

		if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
			log.Error("failed to queue document",
				"document_id", req.DocumentID,
				"event_id", event.ID,
				"queued_before_failure", len(accepted),
				"error", err)
			respondWithMappedError(w, r, err)
			return
		}

		accepted = append(accepted, AcceptedDocument{
			TaskID:     event.ID,
			DocumentID: req.DocumentID,
			StorageKey: req.StorageKey,
		})
	}

	log.Info("documents queued", "count", len(accepted))
	shared.RespondWithJSON(w, r, http.StatusAccepted, AcceptedResponse{Accepted: accepted})
}
