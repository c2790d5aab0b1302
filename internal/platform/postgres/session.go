package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/phrazzld/quizgen/internal/platform/logger"
	"github.com/phrazzld/quizgen/internal/store"
)

const (
	insertQuestionQuery = `
		INSERT INTO question (question, answer, document_id, delivered_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	updateStatusQuery  = `UPDATE document SET status = $1 WHERE id = $2`
	updateSummaryQuery = `UPDATE document SET summary = $1 WHERE id = $2`
)

// SessionOpener implements store.SessionOpener by checking out a dedicated
// connection from the pool for each run.
type SessionOpener struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.SessionOpener = (*SessionOpener)(nil)

// NewSessionOpener creates a SessionOpener over db.
// If logger is nil, a default logger will be used.
func NewSessionOpener(db *sql.DB, logger *slog.Logger) *SessionOpener {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SessionOpener{
		db:     db,
		logger: logger.With(slog.String("component", "document_session")),
	}
}

// Open implements store.SessionOpener.Open.
func (o *SessionOpener) Open(ctx context.Context) (store.DocumentSession, error) {
	conn, err := o.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire database connection: %w", err)
	}

	return &DocumentSession{conn: conn, logger: o.logger}, nil
}

// DocumentSession implements store.DocumentSession on a single connection.
// Each write runs in its own short transaction.
type DocumentSession struct {
	conn   *sql.Conn
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

var _ store.DocumentSession = (*DocumentSession)(nil)

// InsertQuestion implements store.DocumentSession.InsertQuestion.
// Returns validation errors from the domain Question if data is invalid and
// store.ErrInvalidEntity if the document does not exist.
func (s *DocumentSession) InsertQuestion(ctx context.Context, question *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		log.Warn("question validation failed during insert",
			slog.String("error", err.Error()),
			slog.Int64("document_id", question.DocumentID))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	err := s.exec(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, insertQuestionQuery,
			question.Question,
			question.Answer,
			question.DocumentID,
			question.DeliveredCount,
			question.CreatedAt,
			question.UpdatedAt,
		)
		return MapError(err)
	})
	if err != nil {
		log.Error("failed to insert question",
			slog.String("error", err.Error()),
			slog.Int64("document_id", question.DocumentID))
		return store.NewStoreError("question", "insert", "failed to insert question", err)
	}

	log.Debug("question inserted",
		slog.Int64("document_id", question.DocumentID),
		slog.Int("delivered_count", question.DeliveredCount))
	return nil
}

// UpdateStatus implements store.DocumentSession.UpdateStatus.
func (s *DocumentSession) UpdateStatus(
	ctx context.Context,
	documentID int64,
	status domain.DocumentStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Valid() {
		return fmt.Errorf("%w: %w: %q", store.ErrInvalidEntity, domain.ErrInvalidDocumentStatus, status)
	}

	if err := s.updateDocument(ctx, updateStatusQuery, string(status), documentID); err != nil {
		log.Error("failed to update document status",
			slog.String("error", err.Error()),
			slog.Int64("document_id", documentID),
			slog.String("status", string(status)))
		return store.NewStoreError("document", "update_status", "failed to update status", err)
	}

	log.Info("document status updated",
		slog.Int64("document_id", documentID),
		slog.String("status", string(status)))
	return nil
}

// UpdateSummary implements store.DocumentSession.UpdateSummary.
func (s *DocumentSession) UpdateSummary(ctx context.Context, documentID int64, summary string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.updateDocument(ctx, updateSummaryQuery, summary, documentID); err != nil {
		log.Error("failed to update document summary",
			slog.String("error", err.Error()),
			slog.Int64("document_id", documentID))
		return store.NewStoreError("document", "update_summary", "failed to update summary", err)
	}

	log.Info("document summary updated", slog.Int64("document_id", documentID))
	return nil
}

// Close implements store.DocumentSession.Close.
func (s *DocumentSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to release database connection: %w", err)
	}
	return nil
}

func (s *DocumentSession) updateDocument(ctx context.Context, query string, value any, documentID int64) error {
	return s.exec(ctx, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, value, documentID)
		if err != nil {
			return MapError(err)
		}
		return CheckRowsAffected(result, store.ErrDocumentNotFound)
	})
}

// exec runs fn in a transaction on the session connection.
func (s *DocumentSession) exec(ctx context.Context, fn store.TxFn) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return store.ErrSessionClosed
	}

	return store.RunInTransaction(ctx, s.conn, fn)
}
