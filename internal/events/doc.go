// Package events carries document processing requests from the intake
// surface to the worker pool.
//
// The primary components are:
//   - Envelope / ParseEnvelope: the SQS-style batch in which documents arrive
//   - TaskRequestEvent: a request to create a background task
//   - EventHandler / EventEmitter: loose coupling between intake and tasks
package events
