// Package pipeline drives one document through the worker: fetch the text,
// split it into chunks, generate questions chunk by chunk, persist the
// terminal document status and finally attempt a summary.
//
// A run is strictly sequential. All per-run state (the dedup window and the
// delivery quota) lives on the run, so concurrent runs of different documents
// share nothing but the Pipeline's stateless collaborators.
package pipeline
