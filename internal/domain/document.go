package domain

// DocumentStatus represents the processing state of an uploaded document.
type DocumentStatus string

// Possible document status values. A document starts UNPROCESSED and the
// worker moves it to exactly one of the other three states.
const (
	DocumentStatusUnprocessed      DocumentStatus = "UNPROCESSED"
	DocumentStatusProcessed        DocumentStatus = "PROCESSED"
	DocumentStatusCompletelyFailed DocumentStatus = "COMPLETELY_FAILED"
	DocumentStatusPartialSuccess   DocumentStatus = "PARTIAL_SUCCESS"
)

// Valid reports whether s is a known document status.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusUnprocessed, DocumentStatusProcessed,
		DocumentStatusCompletelyFailed, DocumentStatusPartialSuccess:
		return true
	default:
		return false
	}
}

// Terminal reports whether s is one of the states the worker writes.
func (s DocumentStatus) Terminal() bool {
	return s.Valid() && s != DocumentStatusUnprocessed
}
