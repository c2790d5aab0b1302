package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/quizgen/internal/api/middleware"
	"github.com/phrazzld/quizgen/internal/events"
)

// RouterDeps are the collaborators behind the intake routes.
type RouterDeps struct {
	Emitter      events.EventEmitter
	Tasks        TaskReader
	Queue        QueueStats
	MaxBodyBytes int64
	Logger       *slog.Logger
}

// NewRouter builds the intake HTTP handler.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(deps.Logger))

	documents := NewDocumentHandler(deps.Emitter, deps.MaxBodyBytes)
	tasks := NewTaskHandler(deps.Tasks)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/documents/events", documents.ReceiveEvents)
		r.Get("/tasks/{id}", tasks.GetTask)
	})

	r.Get("/health", healthHandler(deps.Queue))

	return r
}
