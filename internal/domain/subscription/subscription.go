package subscription

import (
	"fmt"
	"time"
)

// Subscription is the single subscription record of an agent profile.
// A nil expiresAt means there is no paid window and trial logic decides.
type Subscription struct {
	id        uint
	agentID   uint
	plan      Plan
	expiresAt *time.Time
	createdAt time.Time
	updatedAt time.Time
}

func NewSubscription(agentID uint, plan Plan, expiresAt *time.Time, now time.Time) (*Subscription, error) {
	if agentID == 0 {
		return nil, fmt.Errorf("agent ID is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, plan)
	}
	return &Subscription{
		agentID:   agentID,
		plan:      plan,
		expiresAt: expiresAt,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSubscription(id, agentID uint, plan Plan, expiresAt *time.Time, createdAt, updatedAt time.Time) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, plan)
	}
	return &Subscription{
		id:        id,
		agentID:   agentID,
		plan:      plan,
		expiresAt: expiresAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// IsActive is true iff expiresAt is set and strictly after now.
func (s *Subscription) IsActive(now time.Time) bool {
	return s != nil && s.expiresAt != nil && s.expiresAt.After(now)
}

// Assign sets plan and expiry directly, as done from the admin console.
func (s *Subscription) Assign(plan Plan, expiresAt *time.Time, now time.Time) error {
	if !plan.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPlan, plan)
	}
	s.plan = plan
	s.expiresAt = expiresAt
	s.updatedAt = now
	return nil
}

// Extend applies a paid period. Buying the plan that is already active adds
// the period to the current expiry; otherwise the period starts now.
func (s *Subscription) Extend(plan Plan, period time.Duration, now time.Time) error {
	if !plan.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPlan, plan)
	}
	if period <= 0 {
		return fmt.Errorf("%w: period must be positive", ErrInvalidExpiry)
	}

	start := now
	if s.plan == plan && s.IsActive(now) {
		start = *s.expiresAt
	}
	end := start.Add(period)

	s.plan = plan
	s.expiresAt = &end
	s.updatedAt = now
	return nil
}

// PriorityAt returns the listing priority granted at now. Inactive or absent
// subscriptions score the default.
func PriorityAt(s *Subscription, now time.Time) int {
	if !s.IsActive(now) {
		return Plan("").Priority()
	}
	return s.plan.Priority()
}

func (s *Subscription) ID() uint {
	return s.id
}

func (s *Subscription) AgentID() uint {
	return s.agentID
}

func (s *Subscription) Plan() Plan {
	return s.plan
}

func (s *Subscription) ExpiresAt() *time.Time {
	return s.expiresAt
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *Subscription) SetID(id uint) {
	s.id = id
}
