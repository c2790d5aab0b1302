package events

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/spf13/cast"
)

var (
	// ErrMalformedEnvelope is returned when a batch or record body is not valid JSON.
	ErrMalformedEnvelope = errors.New("malformed event envelope")

	// ErrEmptyEnvelope is returned when a batch has no records.
	ErrEmptyEnvelope = errors.New("event envelope has no records")

	// ErrUnexpectedEventType is returned when an event carries another task type.
	ErrUnexpectedEventType = errors.New("unexpected event type")
)

// Field names of a document message body.
const (
	fieldStorageKey = "s3_key"
	fieldDocumentID = "db_pk"
	fieldPlan       = "subscription_plan"
)

var validate = validator.New()

// Envelope is an SQS-style batch of queue records.
type Envelope struct {
	Records []Record `json:"Records"`
}

// Record is one queue message. Body holds the JSON document message.
type Record struct {
	MessageID string `json:"messageId,omitempty"`
	Body      string `json:"body"`
}

// documentMessage is the coerced form of a record body.
type documentMessage struct {
	StorageKey string `validate:"required"`
	DocumentID int64  `validate:"required,gt=0"`
	Plan       string `validate:"required"`
}

// ParseEnvelope decodes a batch and every record in it. It fails on the
// first record that cannot be turned into a processing request.
func ParseEnvelope(data []byte) ([]domain.ProcessingRequest, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	if len(env.Records) == 0 {
		return nil, ErrEmptyEnvelope
	}

	requests := make([]domain.ProcessingRequest, 0, len(env.Records))
	for i, record := range env.Records {
		req, err := ParseRecordBody(record.Body)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// ParseRecordBody turns one message body into a processing request. All
// three fields must be present; db_pk may be a JSON number or a numeric
// string. The plan value itself is checked when the run starts.
func ParseRecordBody(body string) (domain.ProcessingRequest, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return domain.ProcessingRequest{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	for _, name := range []string{fieldStorageKey, fieldDocumentID, fieldPlan} {
		if v, ok := fields[name]; !ok || v == nil {
			return domain.ProcessingRequest{}, fmt.Errorf("%w: %s", domain.ErrMissingField, name)
		}
	}

	var msg documentMessage
	var err error
	if msg.StorageKey, err = cast.ToStringE(fields[fieldStorageKey]); err != nil {
		return domain.ProcessingRequest{}, fmt.Errorf("%w: %s: %v", domain.ErrValidation, fieldStorageKey, err)
	}
	if msg.DocumentID, err = cast.ToInt64E(fields[fieldDocumentID]); err != nil {
		return domain.ProcessingRequest{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidDocumentID, fieldDocumentID, err)
	}
	if msg.Plan, err = cast.ToStringE(fields[fieldPlan]); err != nil {
		return domain.ProcessingRequest{}, fmt.Errorf("%w: %s: %v", domain.ErrValidation, fieldPlan, err)
	}

	if err := validate.Struct(msg); err != nil {
		return domain.ProcessingRequest{}, validationError(err)
	}

	return domain.ProcessingRequest{
		StorageKey: msg.StorageKey,
		DocumentID: msg.DocumentID,
		Plan:       domain.SubscriptionPlan(msg.Plan),
	}, nil
}

// validationError maps validator failures to domain errors.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fe := fieldErrs[0]
	name := map[string]string{
		"StorageKey": fieldStorageKey,
		"DocumentID": fieldDocumentID,
		"Plan":       fieldPlan,
	}[fe.Field()]

	if fe.Field() == "DocumentID" {
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidDocumentID, name)
	}
	return fmt.Errorf("%w: %s", domain.ErrMissingField, name)
}
