package domain

import "fmt"

// SubscriptionPlan is the plan of the user who owns a document. It decides how
// many generated questions are delivered.
type SubscriptionPlan string

// Supported plans.
const (
	PlanFree SubscriptionPlan = "FREE"
	PlanPro  SubscriptionPlan = "PRO"
)

// Question quotas per plan.
const (
	// FreePlanQuestionLimit is the number of questions per document that are
	// delivered to users on the free plan.
	FreePlanQuestionLimit = 5

	// ProPlanQuestionLimit is the nominal quiz size for paid users. Paid
	// documents are not capped; the value is kept for clients that size quizzes.
	ProPlanQuestionLimit = 10
)

// Valid reports whether p is a known plan.
func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanFree, PlanPro:
		return true
	default:
		return false
	}
}

// ParseSubscriptionPlan converts a raw plan value into a SubscriptionPlan.
func ParseSubscriptionPlan(raw string) (SubscriptionPlan, error) {
	plan := SubscriptionPlan(raw)
	if !plan.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlan, raw)
	}
	return plan, nil
}
