package generation

import (
	"fmt"

	"github.com/phrazzld/quizgen/internal/domain"
)

// QuotaTracker decides, question by question, whether a generated question is
// delivered to the user.
//
//	| Plan | exposed vs limit | delivered | effect        |
//	| FREE | exposed < limit  | 1         | exposed += 1  |
//	| FREE | exposed >= limit | 0         | none          |
//	| PRO  | n/a              | 1         | none          |
type QuotaTracker struct {
	plan    domain.SubscriptionPlan
	limit   int
	exposed int
}

// NewQuotaTracker creates a tracker for plan. freeLimit caps delivered
// questions on the free plan. An unknown plan is a configuration error.
func NewQuotaTracker(plan domain.SubscriptionPlan, freeLimit int) (*QuotaTracker, error) {
	if !plan.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPlan, plan)
	}
	if freeLimit < 0 {
		return nil, fmt.Errorf("%w: free plan limit must not be negative, got %d", ErrInvalidConfig, freeLimit)
	}
	return &QuotaTracker{plan: plan, limit: freeLimit}, nil
}

// Next returns the delivery flag for the next generated question and updates
// the counter.
func (q *QuotaTracker) Next() int {
	if q.plan == domain.PlanPro {
		return domain.Delivered
	}

	if q.exposed >= q.limit {
		return domain.NotDelivered
	}
	q.exposed++
	return domain.Delivered
}

// Exposed returns how many free-plan questions have been marked delivered.
func (q *QuotaTracker) Exposed() int {
	return q.exposed
}

// Plan returns the plan the tracker enforces.
func (q *QuotaTracker) Plan() domain.SubscriptionPlan {
	return q.plan
}
