package subscription

import "time"

// Status is the agent-facing subscription state.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusTrial   Status = "TRIAL"
	StatusExpired Status = "EXPIRED"
)

// Decision is the outcome of the write gate for one agent at one instant.
type Decision struct {
	Allowed     bool
	Status      Status
	Plan        Plan
	TrialEndsAt *time.Time
	ExpiresAt   *time.Time
}

// Evaluate allows agent writes iff the subscription is active or now is
// strictly before trialEndsAt. sub may be nil when the agent never subscribed.
func Evaluate(sub *Subscription, trialEndsAt *time.Time, now time.Time) Decision {
	d := Decision{TrialEndsAt: trialEndsAt, Plan: PlanFree}
	if sub != nil {
		d.Plan = sub.plan
		d.ExpiresAt = sub.expiresAt
	}

	switch {
	case sub.IsActive(now):
		d.Status = StatusActive
		d.Allowed = true
	case trialEndsAt != nil && now.Before(*trialEndsAt):
		d.Status = StatusTrial
		d.Allowed = true
	default:
		d.Status = StatusExpired
	}
	return d
}
