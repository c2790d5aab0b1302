package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/phrazzld/quizgen/internal/platform/logger"
)

// Summary input defaults.
const (
	DefaultSummaryPrefixSize = 600
	DefaultSummaryInputLimit = 2000
)

// SummaryInput concatenates the first prefixSize characters of each chunk, in
// order, and stops as soon as the accumulated length exceeds limit. The chunk
// that crosses the limit is included, so the result may be longer than limit
// by up to prefixSize characters.
func SummaryInput(chunks []string, prefixSize, limit int) string {
	if prefixSize <= 0 {
		prefixSize = DefaultSummaryPrefixSize
	}
	if limit <= 0 {
		limit = DefaultSummaryInputLimit
	}

	var b strings.Builder
	total := 0
	for _, chunk := range chunks {
		part := prefix(chunk, prefixSize)
		b.WriteString(part)
		total += utf8.RuneCountInString(part)
		if total > limit {
			break
		}
	}
	return b.String()
}

// SummaryGenerator asks the model for a short summary of a document. Failures
// are reported and returned in the result; they never abort a run.
type SummaryGenerator struct {
	predictor StructuredPredictor
	notifier  Notifier
	prompt    *PromptTemplate
	logger    *slog.Logger
}

// NewSummaryGenerator creates a SummaryGenerator with the provided dependencies.
func NewSummaryGenerator(
	predictor StructuredPredictor,
	notifier Notifier,
	prompt *PromptTemplate,
	logger *slog.Logger,
) (*SummaryGenerator, error) {
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

	return &SummaryGenerator{
		predictor: predictor,
		notifier:  notifier,
		prompt:    prompt,
		logger:    logger.With("component", "summary_generator"),
	}, nil
}

// Generate produces the summary of input. The reply must be a JSON object
// with a string "summary" member.
func (g *SummaryGenerator) Generate(
	ctx context.Context,
	req domain.ProcessingRequest,
	input string,
) SummaryResult {
	log := logger.FromContextOrDefault(ctx, g.logger)

	messages, err := g.prompt.Render(SummaryPromptData{Note: input})
	if err != nil {
		return g.fail(ctx, log, req, input, err, "Failed to build summary prompt")
	}

	raw, err := g.predictor.PredictStructured(ctx, messages)
	if err != nil {
		if invalid, ok := AsInvalidJSON(err); ok {
			log.WarnContext(ctx, "summary response is not valid JSON", "error", err)
			g.notifier.ReportError(ctx, domain.ErrorReport{
				Task:            domain.TaskSummaryGeneration,
				Type:            domain.ErrorTypeInvalidFormat,
				DocumentContent: input,
				RawResponse:     invalid.Raw,
				Message:         "LLM Response is not JSON-decodable",
				Info:            req.Info(),
			})
			return SummaryResult{Outcome: OutcomeInvalidFormat, RawResponse: invalid.Raw, Err: err}
		}
		return g.fail(ctx, log, req, input, err, "Failed to generate summary")
	}

	summary, err := parseSummary(raw)
	if err != nil {
		message := fmt.Sprintf(
			"LLM Response is JSON decodable but does not have a 'summary' key.\nresponse: %s",
			string(raw))
		return g.fail(ctx, log, req, input, err, message)
	}

	log.InfoContext(ctx, "summary generated", "summary_length", utf8.RuneCountInString(summary))
	return SummaryResult{Outcome: OutcomeSuccess, Summary: summary}
}

func (g *SummaryGenerator) fail(
	ctx context.Context,
	log *slog.Logger,
	req domain.ProcessingRequest,
	input string,
	err error,
	message string,
) SummaryResult {
	log.WarnContext(ctx, "summary generation failed", "error", err)
	g.notifier.ReportError(ctx, domain.ErrorReport{
		Task:            domain.TaskSummaryGeneration,
		Type:            domain.ErrorTypeGeneral,
		DocumentContent: input,
		Message:         message,
		Info:            req.Info(),
	})
	return SummaryResult{Outcome: OutcomeGeneralFailure, Err: err}
}

func parseSummary(raw json.RawMessage) (string, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("%w: expected a summary object: %v", ErrInvalidResponse, err)
	}

	summary, ok := obj["summary"].(string)
	if !ok {
		return "", fmt.Errorf("%w: summary is missing or not a string", ErrInvalidResponse)
	}
	return summary, nil
}
