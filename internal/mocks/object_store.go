package mocks

import (
	"context"
	"sync"
)

// MockObjectStore implements pipeline.ObjectStore for testing.
type MockObjectStore struct {
	// GetFn allows test cases to mock the Get behavior
	GetFn func(ctx context.Context, key string) (string, error)

	// Objects maps keys to document text for the default behavior
	Objects map[string]string

	// Err is returned for every call when set
	Err error

	mu   sync.Mutex
	Keys []string
}

// Get implements the pipeline.ObjectStore interface
func (m *MockObjectStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	m.Keys = append(m.Keys, key)
	m.mu.Unlock()

	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Objects[key], nil
}
