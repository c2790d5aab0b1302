package generation

import "github.com/phrazzld/quizgen/internal/domain"

// OutcomeCounts is the frequency of each outcome over a run.
type OutcomeCounts map[Outcome]int

// CountOutcomes tallies the outcome of every chunk result.
func CountOutcomes(results []ChunkResult) OutcomeCounts {
	counts := make(OutcomeCounts, 3)
	for _, r := range results {
		counts[r.Outcome]++
	}
	return counts
}

// Failures returns the number of failed attempts of any kind.
func (c OutcomeCounts) Failures() int {
	return c[OutcomeInvalidFormat] + c[OutcomeGeneralFailure]
}

// Status maps the counts to the terminal document status:
// no success at all is COMPLETELY_FAILED, any failure next to a success is
// PARTIAL_SUCCESS, and only successes is PROCESSED.
func (c OutcomeCounts) Status() domain.DocumentStatus {
	switch {
	case c[OutcomeSuccess] == 0:
		return domain.DocumentStatusCompletelyFailed
	case c.Failures() > 0:
		return domain.DocumentStatusPartialSuccess
	default:
		return domain.DocumentStatusProcessed
	}
}

// AggregateStatus derives the document status from the chunk results.
func AggregateStatus(results []ChunkResult) domain.DocumentStatus {
	return CountOutcomes(results).Status()
}
