package store

import (
	"context"

	"github.com/phrazzld/quizgen/internal/domain"
)

// DocumentSession is the database session of one document run. Every write
// is executed and committed immediately; there is no run-wide transaction, so
// questions stored before a later failure stay stored.
type DocumentSession interface {
	// InsertQuestion stores one generated question.
	InsertQuestion(ctx context.Context, question *domain.Question) error

	// UpdateStatus sets the terminal status of a document.
	// Returns ErrDocumentNotFound if no document has the given ID.
	UpdateStatus(ctx context.Context, documentID int64, status domain.DocumentStatus) error

	// UpdateSummary sets the summary of a document.
	// Returns ErrDocumentNotFound if no document has the given ID.
	UpdateSummary(ctx context.Context, documentID int64, summary string) error

	// Close releases the session. It is safe to call more than once.
	Close() error
}

// SessionOpener acquires a DocumentSession for a run.
type SessionOpener interface {
	Open(ctx context.Context) (DocumentSession, error)
}
