package generation

import "github.com/phrazzld/quizgen/internal/domain"

// Outcome classifies one model attempt: a chunk's question generation or the
// summary step.
type Outcome int

// Possible outcomes.
const (
	OutcomeSuccess Outcome = iota
	OutcomeInvalidFormat
	OutcomeGeneralFailure
)

// String returns the log name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalidFormat:
		return "invalid_llm_output_format"
	case OutcomeGeneralFailure:
		return "general_failure"
	default:
		return "unknown"
	}
}

// Failed reports whether the outcome is one of the failure variants.
func (o Outcome) Failed() bool {
	return o != OutcomeSuccess
}

// ChunkResult is the tagged result of generating questions for one chunk.
// Questions is set only on success; RawResponse only for InvalidFormat; Err
// describes any failure.
type ChunkResult struct {
	Index       int
	Outcome     Outcome
	Questions   []*domain.Question
	RawResponse string
	Err         error
}

// SummaryResult is the tagged result of the summary step.
type SummaryResult struct {
	Outcome     Outcome
	Summary     string
	RawResponse string
	Err         error
}
