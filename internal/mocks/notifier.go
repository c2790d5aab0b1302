package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/quizgen/internal/domain"
)

// MockNotifier implements generation.Notifier and records every report.
type MockNotifier struct {
	mu      sync.Mutex
	reports []domain.ErrorReport
}

// ReportError implements the generation.Notifier interface
func (m *MockNotifier) ReportError(_ context.Context, report domain.ErrorReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, report)
}

// Reports returns a copy of the recorded reports in order.
func (m *MockNotifier) Reports() []domain.ErrorReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ErrorReport, len(m.reports))
	copy(out, m.reports)
	return out
}
