package subscription

import (
	"fmt"
	"strings"

	"github.com/estatery/estatery/internal/domain/property"
)

type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanBasic   Plan = "BASIC"
	PlanPremium Plan = "PREMIUM"
)

// Plans lists the canonical plan catalogue in display order.
var Plans = []Plan{PlanFree, PlanBasic, PlanPremium}

func (p Plan) String() string {
	return string(p)
}

func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPremium:
		return true
	}
	return false
}

// IsPaid reports whether the plan can be bought through the payment gateway.
func (p Plan) IsPaid() bool {
	return p == PlanBasic || p == PlanPremium
}

// ParsePlan accepts plan names case-insensitively. Names outside the
// catalogue, such as "PRO", are rejected.
func ParsePlan(s string) (Plan, error) {
	p := Plan(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlan, s)
	}
	return p, nil
}

// Priority is the listing score the plan grants while active.
func (p Plan) Priority() int {
	switch p {
	case PlanPremium:
		return property.PriorityPremium
	case PlanBasic:
		return property.PriorityBasic
	default:
		return property.PriorityDefault
	}
}
