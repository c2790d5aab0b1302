package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/phrazzld/quizgen/internal/pipeline"
)

// Common errors
var (
	ErrNilProcessor = errors.New("document processor cannot be nil")
	ErrNilLogger    = errors.New("logger cannot be nil")
	ErrEmptyTaskID  = errors.New("task ID cannot be empty")
)

// DocumentProcessor runs one document through the generation pipeline.
type DocumentProcessor interface {
	Run(ctx context.Context, req domain.ProcessingRequest) (pipeline.Result, error)
}

// DocumentProcessingTask implements the Task interface for one queued document.
type DocumentProcessingTask struct {
	id        uuid.UUID
	request   domain.ProcessingRequest
	processor DocumentProcessor
	logger    *slog.Logger

	mu     sync.Mutex
	status TaskStatus
	result pipeline.Result
}

// NewDocumentProcessingTask creates a task for req. The request is checked
// by the pipeline when the task runs so that a bad plan surfaces as a
// failed task rather than a rejected submission.
func NewDocumentProcessingTask(
	id uuid.UUID,
	req domain.ProcessingRequest,
	processor DocumentProcessor,
	logger *slog.Logger,
) (*DocumentProcessingTask, error) {
	if processor == nil {
		return nil, ErrNilProcessor
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if id == uuid.Nil {
		return nil, ErrEmptyTaskID
	}

	return &DocumentProcessingTask{
		id:        id,
		request:   req,
		processor: processor,
		logger:    logger.With("task_type", TaskTypeDocumentProcessing, "document_id", req.DocumentID),
		status:    TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *DocumentProcessingTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *DocumentProcessingTask) Type() string {
	return TaskTypeDocumentProcessing
}

// Payload returns the processing request as JSON
func (t *DocumentProcessingTask) Payload() []byte {
	data, err := json.Marshal(t.request)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}
	return data
}

// Status returns the current task status
func (t *DocumentProcessingTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Result returns the pipeline result of a completed task.
func (t *DocumentProcessingTask) Result() pipeline.Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

func (t *DocumentProcessingTask) setStatus(status TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
}

// Execute processes the document. Chunk and summary failures are part of a
// successful run; only fatal pipeline errors fail the task.
func (t *DocumentProcessingTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)
	t.logger.Info("starting document processing task")

	if err := ctx.Err(); err != nil {
		t.setStatus(TaskStatusFailed)
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	result, err := t.processor.Run(ctx, t.request)
	if err != nil {
		t.setStatus(TaskStatusFailed)

		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			t.logger.Error("document processing failed", "stage", stageErr.Stage.String(), "error", stageErr.Err)
		} else {
			t.logger.Error("document processing failed", "error", err)
		}
		return fmt.Errorf("failed to process document %d: %w", t.request.DocumentID, err)
	}

	t.mu.Lock()
	t.result = result
	t.status = TaskStatusCompleted
	t.mu.Unlock()

	t.logger.Info("document processing task completed",
		"status", string(result.Status),
		"questions_saved", result.QuestionsSaved,
		"failed_chunks", result.FailedChunks,
		"summary_saved", result.SummarySaved)
	return nil
}

var _ Task = (*DocumentProcessingTask)(nil)

// DocumentProcessingTaskFactory creates DocumentProcessingTask instances
type DocumentProcessingTaskFactory struct {
	processor DocumentProcessor
	logger    *slog.Logger
}

// NewDocumentProcessingTaskFactory creates a new factory for DocumentProcessingTasks
func NewDocumentProcessingTaskFactory(
	processor DocumentProcessor,
	logger *slog.Logger,
) *DocumentProcessingTaskFactory {
	return &DocumentProcessingTaskFactory{
		processor: processor,
		logger:    logger.With("component", "document_processing_task_factory"),
	}
}

// CreateTask creates a task for req identified by id
func (f *DocumentProcessingTaskFactory) CreateTask(id uuid.UUID, req domain.ProcessingRequest) (Task, error) {
	task, err := NewDocumentProcessingTask(id, req, f.processor, f.logger)
	if err != nil {
		return nil, err
	}
	return task, nil
}
