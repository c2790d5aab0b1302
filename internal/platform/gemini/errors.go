package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrNoMessages is returned when a prediction has no conversation content.
	ErrNoMessages = errors.New("at least one user message is required")
)
