package pipeline

import "fmt"

// Stage is a state of the document run state machine.
type Stage int

// Run stages, in the order a successful run visits them.
const (
	StageInit Stage = iota
	StageChunking
	StageGeneratingQuestions
	StageStatusPersisted
	StageSummarizing
	StageDone
	StageAbortedConfigError
)

// String returns the log name of the stage.
func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageChunking:
		return "chunking"
	case StageGeneratingQuestions:
		return "generating_questions"
	case StageStatusPersisted:
		return "status_persisted"
	case StageSummarizing:
		return "summarizing"
	case StageDone:
		return "done"
	case StageAbortedConfigError:
		return "aborted_config_error"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// StageError is a fatal run error tagged with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}
