package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/quizgen/internal/redact"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many documents are processed concurrently
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// TaskRunner ties the task store, queue and worker pool together. Submitted
// tasks are recorded, queued, and have their status tracked as they run.
type TaskRunner struct {
	store  TaskStore
	queue  *TaskQueue
	pool   *WorkerPool
	logger *slog.Logger
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(store TaskStore, config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	logger = logger.With("component", "task_runner")
	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger)

	return &TaskRunner{
		store:  store,
		queue:  queue,
		pool:   pool,
		logger: logger,
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Submit records the task and adds it to the queue. A task that cannot be
// queued is marked failed.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := r.store.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	if err := r.queue.Enqueue(&trackedTask{Task: task, store: r.store, logger: r.logger}); err != nil {
		if updateErr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, err.Error()); updateErr != nil {
			r.logger.Error("failed to mark rejected task as failed",
				"task_id", task.ID(),
				"error", updateErr)
		}
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return nil
}

// Task returns the tracked state of a submitted task.
func (r *TaskRunner) Task(ctx context.Context, id uuid.UUID) (TaskRecord, error) {
	return r.store.GetTask(ctx, id)
}

// Pending returns the number of queued tasks not yet picked up by a worker.
func (r *TaskRunner) Pending() int {
	return r.queue.Len()
}

// Start begins processing queued tasks
func (r *TaskRunner) Start() {
	r.pool.Start()
}

// Stop cancels running tasks and waits for the workers to exit. Tasks still
// queued stay pending.
func (r *TaskRunner) Stop() {
	r.queue.Close()
	r.pool.Stop()
}

// Shutdown stops accepting tasks and lets the workers drain the queue until
// ctx expires.
func (r *TaskRunner) Shutdown(ctx context.Context) error {
	r.queue.Close()
	return r.pool.Shutdown(ctx)
}

// trackedTask records status transitions of the wrapped task in the store.
type trackedTask struct {
	Task
	store  TaskStore
	logger *slog.Logger
}

func (t *trackedTask) Execute(ctx context.Context) error {
	// Status writes must land even when the run was cancelled.
	statusCtx := context.WithoutCancel(ctx)

	t.update(statusCtx, TaskStatusProcessing, "")

	err := t.Task.Execute(ctx)
	if err != nil {
		t.update(statusCtx, TaskStatusFailed, redact.Error(err))
		return err
	}

	t.update(statusCtx, TaskStatusCompleted, "")
	return nil
}

func (t *trackedTask) update(ctx context.Context, status TaskStatus, errorMsg string) {
	if err := t.store.UpdateTaskStatus(ctx, t.ID(), status, errorMsg); err != nil {
		t.logger.Error("failed to update task status",
			"task_id", t.ID(),
			"status", status,
			"error", err)
	}
}
