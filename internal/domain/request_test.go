package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessingRequestValidate(t *testing.T) {
	t.Parallel()

	valid := ProcessingRequest{StorageKey: "docs/1.txt", DocumentID: 7, Plan: PlanFree}

	testCases := []struct {
		name    string
		mutate  func(r *ProcessingRequest)
		wantErr error
	}{
		{name: "valid request", mutate: func(r *ProcessingRequest) {}},
		{name: "missing storage key", mutate: func(r *ProcessingRequest) { r.StorageKey = "" }, wantErr: ErrMissingField},
		{name: "missing document id", mutate: func(r *ProcessingRequest) { r.DocumentID = 0 }, wantErr: ErrMissingField},
		{name: "negative document id", mutate: func(r *ProcessingRequest) { r.DocumentID = -3 }, wantErr: ErrInvalidDocumentID},
		{name: "missing plan", mutate: func(r *ProcessingRequest) { r.Plan = "" }, wantErr: ErrMissingField},
		// Plan values are checked when the quota is built, not here.
		{name: "unknown plan passes field check", mutate: func(r *ProcessingRequest) { r.Plan = "ENTERPRISE" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)

			err := req.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestProcessingRequestInfo(t *testing.T) {
	t.Parallel()

	req := ProcessingRequest{StorageKey: "docs/1.txt", DocumentID: 7, Plan: PlanPro}
	assert.Equal(t, "* s3_key: `docs/1.txt`\n* document_id: `7`", req.Info())
}

func TestParseSubscriptionPlan(t *testing.T) {
	t.Parallel()

	plan, err := ParseSubscriptionPlan("FREE")
	assert.NoError(t, err)
	assert.Equal(t, PlanFree, plan)

	plan, err = ParseSubscriptionPlan("PRO")
	assert.NoError(t, err)
	assert.Equal(t, PlanPro, plan)

	_, err = ParseSubscriptionPlan("free")
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestDocumentStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, DocumentStatusProcessed.Terminal())
	assert.True(t, DocumentStatusPartialSuccess.Terminal())
	assert.True(t, DocumentStatusCompletelyFailed.Terminal())
	assert.False(t, DocumentStatusUnprocessed.Terminal())
	assert.False(t, DocumentStatus("DONE").Valid())
}
