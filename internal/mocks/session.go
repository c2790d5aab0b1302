package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/phrazzld/quizgen/internal/store"
)

// MockSession implements store.DocumentSession in memory.
type MockSession struct {
	// Custom behavior functions
	InsertQuestionFn func(ctx context.Context, question *domain.Question) error
	UpdateStatusFn   func(ctx context.Context, documentID int64, status domain.DocumentStatus) error
	UpdateSummaryFn  func(ctx context.Context, documentID int64, summary string) error

	mu         sync.Mutex
	Questions  []*domain.Question
	Statuses   []domain.DocumentStatus
	Summaries  []string
	CloseCalls int
}

var _ store.DocumentSession = (*MockSession)(nil)

// InsertQuestion implements the store.DocumentSession interface
func (m *MockSession) InsertQuestion(ctx context.Context, question *domain.Question) error {
	if m.InsertQuestionFn != nil {
		if err := m.InsertQuestionFn(ctx, question); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Questions = append(m.Questions, question)
	return nil
}

// UpdateStatus implements the store.DocumentSession interface
func (m *MockSession) UpdateStatus(ctx context.Context, documentID int64, status domain.DocumentStatus) error {
	if m.UpdateStatusFn != nil {
		if err := m.UpdateStatusFn(ctx, documentID, status); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Statuses = append(m.Statuses, status)
	return nil
}

// UpdateSummary implements the store.DocumentSession interface
func (m *MockSession) UpdateSummary(ctx context.Context, documentID int64, summary string) error {
	if m.UpdateSummaryFn != nil {
		if err := m.UpdateSummaryFn(ctx, documentID, summary); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Summaries = append(m.Summaries, summary)
	return nil
}

// Close implements the store.DocumentSession interface
func (m *MockSession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	return nil
}

// DeliveredCounts returns the delivery flag of every stored question in order.
func (m *MockSession) DeliveredCounts() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.Questions))
	for i, q := range m.Questions {
		out[i] = q.DeliveredCount
	}
	return out
}

// MockSessionOpener implements store.SessionOpener.
type MockSessionOpener struct {
	// Session is returned by every Open call
	Session *MockSession

	// Err makes Open fail
	Err error

	mu        sync.Mutex
	OpenCalls int
}

var _ store.SessionOpener = (*MockSessionOpener)(nil)

// Open implements the store.SessionOpener interface
func (m *MockSessionOpener) Open(_ context.Context) (store.DocumentSession, error) {
	m.mu.Lock()
	m.OpenCalls++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Session, nil
}
