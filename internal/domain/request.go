package domain

import "fmt"

// ProcessingRequest is the immutable input of one worker run: which stored
// document to process and under which plan. It is created from the inbound
// queue event and consumed once.
type ProcessingRequest struct {
	StorageKey string           `json:"s3_key"`
	DocumentID int64            `json:"db_pk"`
	Plan       SubscriptionPlan `json:"subscription_plan"`
}

// Validate checks that every required field is present. It does not judge the
// plan value; an unknown plan is rejected when the run's quota is set up.
func (r ProcessingRequest) Validate() error {
	if r.StorageKey == "" {
		return fmt.Errorf("%w: s3_key", ErrMissingField)
	}

	if r.DocumentID == 0 {
		return fmt.Errorf("%w: db_pk", ErrMissingField)
	}

	if r.DocumentID < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDocumentID, r.DocumentID)
	}

	if r.Plan == "" {
		return fmt.Errorf("%w: subscription_plan", ErrMissingField)
	}

	return nil
}

// Info renders the identifying block attached to every error report.
func (r ProcessingRequest) Info() string {
	return fmt.Sprintf("* s3_key: `%s`\n* document_id: `%d`", r.StorageKey, r.DocumentID)
}
