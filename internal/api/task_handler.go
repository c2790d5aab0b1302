package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/quizgen/internal/api/shared"
	"github.com/phrazzld/quizgen/internal/task"
)

var errInvalidTaskID = errors.New("invalid task ID")

// TaskReader looks up tracked task state.
type TaskReader interface {
	Task(ctx context.Context, id uuid.UUID) (task.TaskRecord, error)
}

// QueueStats reports the number of tasks waiting for a worker.
type QueueStats interface {
	Pending() int
}

// TaskHandler serves task state.
type TaskHandler struct {
	tasks TaskReader
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks TaskReader) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// GetTask handles GET /v1/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	record, err := h.tasks.Task(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, record)
}

// getPathUUID parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", errInvalidTaskID, paramName)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", errInvalidTaskID, paramName)
	}
	return id, nil
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status       string `json:"status"`
	PendingTasks int    `json:"pending_tasks"`
}

// healthHandler reports liveness and queue depth.
func healthHandler(queue QueueStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok"}
		if queue != nil {
			resp.PendingTasks = queue.Pending()
		}
		shared.RespondWithJSON(w, r, http.StatusOK, resp)
	}
}
