package dto

import (
	"time"

	"github.com/estatery/estatery/internal/domain/subscription"
)

type PlanDTO struct {
	Plan         string `json:"plan"`
	Price        int64  `json:"price"`
	Currency     string `json:"currency"`
	DurationDays int    `json:"duration_days"`
	Paid         bool   `json:"paid"`
	Priority     int    `json:"priority"`
}

type SubscriptionDTO struct {
	ID        uint       `json:"id"`
	AgentID   uint       `json:"agent_id"`
	Plan      string     `json:"plan"`
	ExpiresAt *time.Time `json:"expires_at"`
	Active    bool       `json:"active"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// StatusDTO is the gate decision as shown to the agent.
type StatusDTO struct {
	Status      string     `json:"status"`
	Plan        string     `json:"plan"`
	CanWrite    bool       `json:"can_write"`
	TrialEndsAt *time.Time `json:"trial_ends_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

func ToSubscriptionDTO(s *subscription.Subscription, now time.Time) SubscriptionDTO {
	return SubscriptionDTO{
		ID:        s.ID(),
		AgentID:   s.AgentID(),
		Plan:      s.Plan().String(),
		ExpiresAt: s.ExpiresAt(),
		Active:    s.IsActive(now),
		UpdatedAt: s.UpdatedAt(),
	}
}

func ToStatusDTO(d subscription.Decision) StatusDTO {
	return StatusDTO{
		Status:      string(d.Status),
		Plan:        d.Plan.String(),
		CanWrite:    d.Allowed,
		TrialEndsAt: d.TrialEndsAt,
		ExpiresAt:   d.ExpiresAt,
	}
}
