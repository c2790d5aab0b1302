package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrMissingField is returned when a processing request lacks one of
	// its required fields (s3_key, db_pk, subscription_plan).
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidPlan is returned when a subscription plan is neither FREE nor PRO.
	ErrInvalidPlan = errors.New("invalid subscription plan")

	// ErrInvalidDocumentID is returned when a document ID is not a positive integer.
	ErrInvalidDocumentID = errors.New("invalid document ID")

	// ErrInvalidDocumentStatus is returned when a document status is not valid.
	ErrInvalidDocumentStatus = errors.New("invalid document status")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidDeliveredCount is returned when a delivered count is not 0 or 1.
	ErrInvalidDeliveredCount = errors.New("delivered count must be 0 or 1")
)
