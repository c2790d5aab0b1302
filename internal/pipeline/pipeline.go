package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/phrazzld/quizgen/internal/generation"
	"github.com/phrazzld/quizgen/internal/platform/logger"
	"github.com/phrazzld/quizgen/internal/store"
)

// ObjectStore reads stored documents as text.
type ObjectStore interface {
	// Get returns the decoded text stored under key.
	Get(ctx context.Context, key string) (string, error)
}

// Settings holds the sizes that shape a run.
type Settings struct {
	ChunkSize         int
	SummaryPrefixSize int
	SummaryInputLimit int
	Limits            generation.Limits
}

// DefaultSettings returns the production settings.
func DefaultSettings() Settings {
	return Settings{
		ChunkSize:         generation.DefaultChunkSize,
		SummaryPrefixSize: generation.DefaultSummaryPrefixSize,
		SummaryInputLimit: generation.DefaultSummaryInputLimit,
		Limits:            generation.DefaultLimits(),
	}
}

// Dependencies are the ports a Pipeline talks to.
type Dependencies struct {
	Documents ObjectStore
	Sessions  store.SessionOpener
	Predictor generation.StructuredPredictor
	Notifier  generation.Notifier
	Prompts   *generation.Prompts
}

// Result is returned by a completed run.
type Result struct {
	StatusCode     int                   `json:"statusCode"`
	Message        string                `json:"message"`
	DocumentID     int64                 `json:"document_id"`
	Status         domain.DocumentStatus `json:"status"`
	ChunkCount     int                   `json:"chunk_count"`
	FailedChunks   int                   `json:"failed_chunks"`
	QuestionsSaved int                   `json:"questions_saved"`
	SummarySaved   bool                  `json:"summary_saved"`
}

// Pipeline processes documents. It is safe for concurrent use; each Run owns
// its own state and database session.
type Pipeline struct {
	documents ObjectStore
	sessions  store.SessionOpener
	questions *generation.QuestionGenerator
	summaries *generation.SummaryGenerator
	settings  Settings
	logger    *slog.Logger
}

// New creates a Pipeline from its dependencies.
func New(deps Dependencies, settings Settings, logger *slog.Logger) (*Pipeline, error) {
	if deps.Documents == nil {
		return nil, fmt.Errorf("%w: documents", generation.ErrNilDependency)
	}
	if deps.Sessions == nil {
		return nil, fmt.Errorf("%w: sessions", generation.ErrNilDependency)
	}
	if deps.Prompts == nil {
		return nil, fmt.Errorf("%w: prompts", generation.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", generation.ErrNilDependency)
	}
	if settings.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d",
			generation.ErrInvalidConfig, settings.ChunkSize)
	}

	questions, err := generation.NewQuestionGenerator(deps.Predictor, deps.Notifier, deps.Prompts.Questions, logger)
	if err != nil {
		return nil, err
	}

	summaries, err := generation.NewSummaryGenerator(deps.Predictor, deps.Notifier, deps.Prompts.Summary, logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		documents: deps.Documents,
		sessions:  deps.Sessions,
		questions: questions,
		summaries: summaries,
		settings:  settings,
		logger:    logger.With("component", "pipeline"),
	}, nil
}

// Run processes one document end to end.
//
// Chunk and summary failures are reported to the notifier and never fail the
// run. The returned error is a *StageError for fatal conditions: an invalid
// request, an unreadable document, or a database failure. The database
// session is released on every return path.
func (p *Pipeline) Run(ctx context.Context, req domain.ProcessingRequest) (Result, error) {
	log := p.logger.With(
		"document_id", req.DocumentID,
		"storage_key", req.StorageKey,
		"plan", string(req.Plan),
	)
	ctx = logger.WithLogger(ctx, log)

	// Init
	if err := req.Validate(); err != nil {
		log.ErrorContext(ctx, "invalid processing request", "error", err)
		return Result{}, &StageError{Stage: StageAbortedConfigError, Err: err}
	}

	state, err := generation.NewRunState(req, p.settings.Limits)
	if err != nil {
		log.ErrorContext(ctx, "invalid run configuration", "error", err)
		return Result{}, &StageError{Stage: StageAbortedConfigError, Err: err}
	}

	text, err := p.documents.Get(ctx, req.StorageKey)
	if err != nil {
		log.ErrorContext(ctx, "failed to fetch document", "error", err)
		return Result{}, &StageError{Stage: StageInit, Err: fmt.Errorf("failed to fetch document: %w", err)}
	}

	session, err := p.sessions.Open(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to open database session", "error", err)
		return Result{}, &StageError{Stage: StageInit, Err: err}
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.WarnContext(ctx, "failed to close database session", "error", cerr)
		}
	}()

	// Chunking
	chunks, err := generation.Split(text, p.settings.ChunkSize)
	if err != nil {
		return Result{}, &StageError{Stage: StageChunking, Err: err}
	}
	log.InfoContext(ctx, "document split", "stage", StageChunking.String(), "chunk_count", len(chunks))

	// GeneratingQuestions
	results := make([]generation.ChunkResult, 0, len(chunks))
	saved := 0
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			log.WarnContext(ctx, "run cancelled", "chunk_index", i, "error", err)
			return Result{}, &StageError{Stage: StageGeneratingQuestions, Err: err}
		}

		res, err := p.questions.GenerateChunk(ctx, state, session, i, chunk)
		if err != nil {
			return Result{}, &StageError{Stage: StageGeneratingQuestions, Err: err}
		}
		results = append(results, res)
		saved += len(res.Questions)
	}

	// StatusPersisted
	counts := generation.CountOutcomes(results)
	status := counts.Status()
	if err := session.UpdateStatus(ctx, req.DocumentID, status); err != nil {
		return Result{}, &StageError{Stage: StageStatusPersisted, Err: err}
	}
	log.InfoContext(ctx, "document status persisted",
		"stage", StageStatusPersisted.String(),
		"status", string(status),
		"questions_saved", saved,
		"failed_chunks", counts.Failures())

	result := Result{
		StatusCode:     http.StatusOK,
		DocumentID:     req.DocumentID,
		Status:         status,
		ChunkCount:     len(chunks),
		FailedChunks:   counts.Failures(),
		QuestionsSaved: saved,
	}

	// Summarizing
	input := generation.SummaryInput(chunks, p.settings.SummaryPrefixSize, p.settings.SummaryInputLimit)
	if input == "" {
		log.InfoContext(ctx, "document is empty, skipping summary", "stage", StageSummarizing.String())
	} else {
		summary := p.summaries.Generate(ctx, req, input)
		if summary.Outcome == generation.OutcomeSuccess {
			if err := session.UpdateSummary(ctx, req.DocumentID, summary.Summary); err != nil {
				return Result{}, &StageError{Stage: StageSummarizing, Err: err}
			}
			result.SummarySaved = true
		}
	}

	// Done
	result.Message = fmt.Sprintf("Document %d processed with status %s", req.DocumentID, status)
	log.InfoContext(ctx, "document processed",
		"stage", StageDone.String(),
		"status", string(status),
		"summary_saved", result.SummarySaved)

	return result, nil
}
