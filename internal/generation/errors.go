package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when a model call fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate content from text")

	// ErrInvalidResponse is returned when the model response is decodable but
	// does not have the expected shape
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrNilDependency is returned when a constructor receives a nil collaborator
	ErrNilDependency = errors.New("dependency cannot be nil")
)

// InvalidJSONResponseError is returned by a StructuredPredictor when the model
// answered but its reply is not valid JSON. Raw holds the unparsed reply.
type InvalidJSONResponseError struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *InvalidJSONResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("language model response is not JSON-decodable: %v", e.Err)
	}
	return "language model response is not JSON-decodable"
}

// Unwrap returns the underlying decode error.
func (e *InvalidJSONResponseError) Unwrap() error {
	return e.Err
}

// AsInvalidJSON reports whether err is (or wraps) an InvalidJSONResponseError
// and returns it.
func AsInvalidJSON(err error) (*InvalidJSONResponseError, bool) {
	var invalid *InvalidJSONResponseError
	if errors.As(err, &invalid) {
		return invalid, true
	}
	return nil, false
}
