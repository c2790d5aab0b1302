// Package generation turns document text into quiz questions and a summary
// with a language model.
//
// It owns the per-document algorithms of the worker:
//
//   - Split cuts the text into fixed-size chunks.
//   - QuestionGenerator sends one structured (JSON) request per chunk, feeding
//     back the most recent questions (RecentQuestions) so the model avoids
//     repeats, classifies each attempt into a ChunkResult and persists accepted
//     questions with a delivery flag decided by the QuotaTracker.
//   - AggregateStatus reduces the chunk outcomes to one terminal document status.
//   - SummaryGenerator asks for a short summary over a bounded prefix of the text.
//
// The language model and the error channel are reached through the
// StructuredPredictor and Notifier interfaces; implementations live under
// internal/platform. All mutable state of a run lives in a RunState value
// created per document, never in package variables.
package generation
