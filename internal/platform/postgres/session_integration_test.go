//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/phrazzld/quizgen/internal/platform/postgres"
	"github.com/phrazzld/quizgen/internal/store"
	"github.com/phrazzld/quizgen/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentSession_Integration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()
	docID := testdb.InsertDocument(t, db, "integration/doc.txt")

	opener := postgres.NewSessionOpener(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	session, err := opener.Open(ctx)
	require.NoError(t, err)
	defer func() { _ = session.Close() }()

	now := time.Now().UTC().Truncate(time.Microsecond)
	for i, delivered := range []int{domain.Delivered, domain.NotDelivered} {
		q, err := domain.NewQuestion(docID, "Q"+string(rune('1'+i)), "A", delivered, now)
		require.NoError(t, err)
		require.NoError(t, session.InsertQuestion(ctx, q))
	}

	require.NoError(t, session.UpdateStatus(ctx, docID, domain.DocumentStatusProcessed))
	require.NoError(t, session.UpdateSummary(ctx, docID, "a short summary"))

	var status string
	var summary sql.NullString
	err = db.QueryRowContext(ctx, `SELECT status, summary FROM document WHERE id = $1`, docID).
		Scan(&status, &summary)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DocumentStatusProcessed), status)
	assert.Equal(t, "a short summary", summary.String)

	rows, err := db.QueryContext(ctx,
		`SELECT question, delivered_count FROM question WHERE document_id = $1 ORDER BY id`, docID)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var got []string
	var counts []int
	for rows.Next() {
		var text string
		var count int
		require.NoError(t, rows.Scan(&text, &count))
		got = append(got, text)
		counts = append(counts, count)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"Q1", "Q2"}, got)
	assert.Equal(t, []int{domain.Delivered, domain.NotDelivered}, counts)
}

func TestDocumentSession_Integration_MissingDocument(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	session, err := postgres.NewSessionOpener(db, nil).Open(ctx)
	require.NoError(t, err)
	defer func() { _ = session.Close() }()

	err = session.UpdateStatus(ctx, -1, domain.DocumentStatusProcessed)
	assert.ErrorIs(t, err, store.ErrDocumentNotFound)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		var n int
		require.NoError(t, tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM document WHERE id = -1`).Scan(&n))
		assert.Zero(t, n)
	})
}
