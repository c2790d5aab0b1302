// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline fakes in individual test files, tests share
// these implementations of the worker's ports: the language model
// (MockPredictor), the operations channel (MockNotifier), the document
// store (MockObjectStore) and the database session (MockSession).
//
// Usage:
//
//	predictor := mocks.NewMockPredictorWithResponses(
//	    `[{"question": "Q1", "answer": "A1"}]`,
//	)
//	notifier := &mocks.MockNotifier{}
//
// Each mock records its calls for later verification and lets a test
// override behavior through a function field.
package mocks
