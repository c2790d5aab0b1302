package domain

// ErrorType classifies a language model failure in an error report.
type ErrorType string

// Error types sent to the operations channel.
const (
	// ErrorTypeInvalidFormat marks a model reply that could not be decoded as JSON.
	ErrorTypeInvalidFormat ErrorType = "INVALID_LLM_JSON_RESPONSE_FORMAT"

	// ErrorTypeGeneral marks every other failure.
	ErrorTypeGeneral ErrorType = "GENERAL"
)

// Task names used in error reports.
const (
	TaskQuestionGeneration = "Question Generation"
	TaskSummaryGeneration  = "Summary Generation"
)

// ErrorReport is a best-effort diagnostic sent when a chunk or the summary
// step fails. RawResponse is empty when the model produced no reply.
type ErrorReport struct {
	Task            string
	Type            ErrorType
	DocumentContent string
	RawResponse     string
	Message         string
	Info            string
}

// HasRawResponse reports whether the model's unparsed reply is attached.
func (r ErrorReport) HasRawResponse() bool {
	return r.RawResponse != ""
}
