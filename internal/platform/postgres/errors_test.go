package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/quizgen/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedError error
		expectedMsg   string
	}{
		{
			name: "nil_error",
		},
		{
			name:          "sql_no_rows",
			err:           sql.ErrNoRows,
			expectedError: store.ErrNotFound,
		},
		{
			name:          "unique_violation",
			err:           &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "question_pkey"},
			expectedError: store.ErrDuplicate,
		},
		{
			name:          "foreign_key_violation",
			err:           &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "question_document_id_fkey"},
			expectedError: store.ErrInvalidEntity,
			expectedMsg:   "foreign key violation (question_document_id_fkey)",
		},
		{
			name:          "check_constraint_violation",
			err:           &pgconn.PgError{Code: checkViolationCode, ConstraintName: "document_status_check"},
			expectedError: store.ErrInvalidEntity,
			expectedMsg:   "check constraint violation (document_status_check)",
		},
		{
			name:          "not_null_violation",
			err:           &pgconn.PgError{Code: notNullViolationCode, ColumnName: "answer"},
			expectedError: store.ErrInvalidEntity,
			expectedMsg:   "not null violation (answer)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}

			require.Error(t, got)
			assert.ErrorIs(t, got, tt.expectedError)
			if tt.expectedMsg != "" {
				assert.Contains(t, got.Error(), tt.expectedMsg)
			}
		})
	}

	t.Run("unmapped_error", func(t *testing.T) {
		original := errors.New("connection refused")
		assert.Same(t, original, MapError(original))
	})
}

func TestViolationPredicates(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolationCode})
	fk := &pgconn.PgError{Code: foreignKeyViolationCode}
	check := &pgconn.PgError{Code: checkViolationCode}
	notNull := &pgconn.PgError{Code: notNullViolationCode}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsCheckConstraintViolation(check))
	assert.True(t, IsNotNullViolation(notNull))
	assert.False(t, IsNotNullViolation(errors.New("plain")))

	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(store.ErrDocumentNotFound))
	assert.False(t, IsNotFoundError(check))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Run("rows affected", func(t *testing.T) {
		assert.NoError(t, CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrDocumentNotFound))
	})

	t.Run("no rows with specific error", func(t *testing.T) {
		err := CheckRowsAffected(mockResult{}, store.ErrDocumentNotFound)
		assert.ErrorIs(t, err, store.ErrDocumentNotFound)
	})

	t.Run("no rows with default error", func(t *testing.T) {
		err := CheckRowsAffected(mockResult{}, nil)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("rows affected error", func(t *testing.T) {
		cause := errors.New("driver does not support rows affected")
		err := CheckRowsAffected(mockResult{err: cause}, nil)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nil result", func(t *testing.T) {
		assert.Error(t, CheckRowsAffected(nil, nil))
	})
}
