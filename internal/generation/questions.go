package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/phrazzld/quizgen/internal/platform/logger"
)

// Limits holds the per-run limits of question generation.
type Limits struct {
	FreePlanLimit    int
	RecentWindowSize int
}

// DefaultLimits returns the production limits.
func DefaultLimits() Limits {
	return Limits{
		FreePlanLimit:    domain.FreePlanQuestionLimit,
		RecentWindowSize: DefaultRecentWindowSize,
	}
}

// RunState is the mutable state threaded through the chunks of one document:
// the dedup window and the delivery quota. It must not be shared between runs.
type RunState struct {
	Request domain.ProcessingRequest
	Recent  *RecentQuestions
	Quota   *QuotaTracker
}

// NewRunState creates the state for one document run. An unknown plan is
// rejected here, before any chunk is sent to the model.
func NewRunState(req domain.ProcessingRequest, limits Limits) (*RunState, error) {
	quota, err := NewQuotaTracker(req.Plan, limits.FreePlanLimit)
	if err != nil {
		return nil, err
	}

	return &RunState{
		Request: req,
		Recent:  NewRecentQuestions(limits.RecentWindowSize),
		Quota:   quota,
	}, nil
}

// questionPair is one decoded element of the model's reply.
type questionPair struct {
	Question string
	Answer   string
}

// QuestionGenerator drives one model call per chunk and persists the accepted
// questions.
type QuestionGenerator struct {
	predictor StructuredPredictor
	notifier  Notifier
	prompt    *PromptTemplate
	logger    *slog.Logger
	now       func() time.Time
}

// NewQuestionGenerator creates a QuestionGenerator with the provided dependencies.
func NewQuestionGenerator(
	predictor StructuredPredictor,
	notifier Notifier,
	prompt *PromptTemplate,
	logger *slog.Logger,
) (*QuestionGenerator, error) {
	if predictor == nil {
		return nil, fmt.Errorf("%w: predictor", ErrNilDependency)
	}
	if notifier == nil {
		return nil, fmt.Errorf("%w: notifier", ErrNilDependency)
	}
	if prompt == nil {
		return nil, fmt.Errorf("%w: prompt", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}

	return &QuestionGenerator{
		predictor: predictor,
		notifier:  notifier,
		prompt:    prompt,
		logger:    logger.With("component", "question_generator"),
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// GenerateChunk generates and stores the questions of one chunk.
//
// Model and format failures are reported to the notifier and returned as a
// failed ChunkResult with a nil error; nothing is recorded for that chunk and
// the run state is left untouched. On success every question, in reply order,
// is pushed to the dedup window, given a delivery flag by the quota and
// written through writer. The returned error is non-nil only when writer
// fails, which aborts the run.
func (g *QuestionGenerator) GenerateChunk(
	ctx context.Context,
	state *RunState,
	writer QuestionWriter,
	index int,
	chunk string,
) (ChunkResult, error) {
	req := state.Request
	log := logger.FromContextOrDefault(ctx, g.logger).With("chunk_index", index)
	result := ChunkResult{Index: index}

	messages, err := g.prompt.Render(QuestionPromptData{
		Note:          chunk,
		PrevQuestions: state.Recent.Joined(),
	})
	if err != nil {
		return g.fail(ctx, log, req, chunk, result, err, "Failed to build question prompt"), nil
	}

	log.DebugContext(ctx, "requesting questions",
		"chunk_length", len(chunk),
		"recent_questions", state.Recent.Len())

	raw, err := g.predictor.PredictStructured(ctx, messages)
	if err != nil {
		if invalid, ok := AsInvalidJSON(err); ok {
			result.Outcome = OutcomeInvalidFormat
			result.RawResponse = invalid.Raw
			result.Err = err
			log.WarnContext(ctx, "question response is not valid JSON", "error", err)
			g.notifier.ReportError(ctx, domain.ErrorReport{
				Task:            domain.TaskQuestionGeneration,
				Type:            domain.ErrorTypeInvalidFormat,
				DocumentContent: chunk,
				RawResponse:     invalid.Raw,
				Message:         "LLM Response is not JSON-decodable",
				Info:            req.Info(),
			})
			return result, nil
		}
		return g.fail(ctx, log, req, chunk, result, err, "Failed to generate questions"), nil
	}

	pairs, err := parseQuestionPairs(raw)
	if err != nil {
		message := fmt.Sprintf(
			"LLM Response is JSON decodable but does not have 'question' and 'answer' keys.\nresponse: %s",
			string(raw))
		return g.fail(ctx, log, req, chunk, result, err, message), nil
	}

	questions := make([]*domain.Question, 0, len(pairs))
	for _, pair := range pairs {
		state.Recent.Push(pair.Question)
		delivered := state.Quota.Next()

		question, err := domain.NewQuestion(req.DocumentID, pair.Question, pair.Answer, delivered, g.now())
		if err != nil {
			return result, fmt.Errorf("failed to build question: %w", err)
		}

		if err := writer.InsertQuestion(ctx, question); err != nil {
			log.ErrorContext(ctx, "failed to save question", "error", err)
			return result, fmt.Errorf("failed to save question: %w", err)
		}
		questions = append(questions, question)
	}

	result.Outcome = OutcomeSuccess
	result.Questions = questions
	log.InfoContext(ctx, "questions generated",
		"question_count", len(questions),
		"free_plan_exposed", state.Quota.Exposed())

	return result, nil
}

// fail reports a general failure and marks result accordingly.
func (g *QuestionGenerator) fail(
	ctx context.Context,
	log *slog.Logger,
	req domain.ProcessingRequest,
	chunk string,
	result ChunkResult,
	err error,
	message string,
) ChunkResult {
	result.Outcome = OutcomeGeneralFailure
	result.Err = err
	log.WarnContext(ctx, "question generation failed", "error", err)
	g.notifier.ReportError(ctx, domain.ErrorReport{
		Task:            domain.TaskQuestionGeneration,
		Type:            domain.ErrorTypeGeneral,
		DocumentContent: chunk,
		Message:         message,
		Info:            req.Info(),
	})
	return result
}

// parseQuestionPairs decodes the model reply into question/answer pairs. The
// reply must be an array of objects with non-empty string "question" and
// "answer" members; any malformed element rejects the whole reply.
func parseQuestionPairs(raw json.RawMessage) ([]questionPair, error) {
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: expected an array of question objects: %v", ErrInvalidResponse, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: expected an array of question objects, got null", ErrInvalidResponse)
	}

	pairs := make([]questionPair, 0, len(items))
	for i, item := range items {
		question, ok := item["question"].(string)
		if !ok || strings.TrimSpace(question) == "" {
			return nil, fmt.Errorf("%w: element %d lacks a question", ErrInvalidResponse, i)
		}

		answer, ok := item["answer"].(string)
		if !ok || strings.TrimSpace(answer) == "" {
			return nil, fmt.Errorf("%w: element %d lacks an answer", ErrInvalidResponse, i)
		}

		pairs = append(pairs, questionPair{Question: question, Answer: answer})
	}

	return pairs, nil
}
