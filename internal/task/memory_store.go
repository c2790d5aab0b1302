package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTaskRetention is the number of finished task records kept in memory.
const DefaultTaskRetention = 1000

// MemoryTaskStore tracks task state in process memory. Finished records
// beyond the retention limit are evicted oldest first; pending and
// processing records are never evicted.
type MemoryTaskStore struct {
	mu     sync.RWMutex
	tasks  map[uuid.UUID]TaskRecord
	order  []uuid.UUID
	retain int
	now    func() time.Time
}

// NewMemoryTaskStore creates a store keeping at most retain finished records.
// A non-positive retain uses DefaultTaskRetention.
func NewMemoryTaskStore(retain int) *MemoryTaskStore {
	if retain <= 0 {
		retain = DefaultTaskRetention
	}
	return &MemoryTaskStore{
		tasks:  make(map[uuid.UUID]TaskRecord),
		retain: retain,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SaveTask records a newly submitted task.
func (s *MemoryTaskStore) SaveTask(ctx context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID()]; exists {
		return fmt.Errorf("task %s already saved", task.ID())
	}

	now := s.now()
	s.tasks[task.ID()] = TaskRecord{
		ID:        task.ID(),
		Type:      task.Type(),
		Status:    task.Status(),
		Payload:   task.Payload(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.order = append(s.order, task.ID())
	s.evict()
	return nil
}

// UpdateTaskStatus updates the status of a task.
func (s *MemoryTaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status TaskStatus,
	errorMsg string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.tasks[taskID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	record.Status = status
	record.Error = errorMsg
	record.UpdatedAt = s.now()
	s.tasks[taskID] = record
	s.evict()
	return nil
}

// GetTask returns the tracked state of one task.
func (s *MemoryTaskStore) GetTask(ctx context.Context, taskID uuid.UUID) (TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.tasks[taskID]
	if !ok {
		return TaskRecord{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	return record, nil
}

// evict drops the oldest finished records above the retention limit.
// Callers hold s.mu.
func (s *MemoryTaskStore) evict() {
	finished := 0
	for _, id := range s.order {
		if isFinished(s.tasks[id].Status) {
			finished++
		}
	}

	if finished <= s.retain {
		return
	}

	excess := finished - s.retain
	kept := s.order[:0]
	for _, id := range s.order {
		if excess > 0 && isFinished(s.tasks[id].Status) {
			delete(s.tasks, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}

func isFinished(status TaskStatus) bool {
	return status == TaskStatusCompleted || status == TaskStatusFailed
}

var _ TaskStore = (*MemoryTaskStore)(nil)
