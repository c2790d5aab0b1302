// Package logger provides structured logging functionality for the worker.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, and carries request-scoped loggers in a context.Context
// so that every log line of a document run includes its document ID and storage key.
package logger
