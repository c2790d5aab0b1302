// Package api is the HTTP intake of the worker. It accepts queue envelopes
// of document messages, turns each record into a document_queued event, and
// reports task state and health.
package api
