package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/quizgen/internal/api/shared"
	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/phrazzld/quizgen/internal/events"
	"github.com/phrazzld/quizgen/internal/task"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, events.ErrMalformedEnvelope),
		errors.Is(err, events.ErrEmptyEnvelope),
		errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrInvalidDocumentID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, errInvalidTaskID):
		return http.StatusBadRequest

	case errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrQueueClosed):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, shared.ErrBodyTooLarge):
		return "Request body too large"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is empty"
	case errors.Is(err, events.ErrEmptyEnvelope):
		return "Envelope contains no records"
	case errors.Is(err, events.ErrMalformedEnvelope):
		return "Invalid request format"
	case errors.Is(err, domain.ErrMissingField):
		return "Record is missing a required field"
	case errors.Is(err, domain.ErrInvalidDocumentID):
		return "Invalid document ID"
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"
	case errors.Is(err, errInvalidTaskID):
		return "Invalid task ID"
	case errors.Is(err, task.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, task.ErrQueueFull):
		return "Worker queue is full, try again later"
	case errors.Is(err, task.ErrQueueClosed):
		return "Worker is shutting down"
	default:
		return "An unexpected error occurred"
	}
}

// respondWithMappedError writes the status and safe message for err.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
