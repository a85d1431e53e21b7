package dto

import (
	"time"

	subdto "github.com/estatery/estatery/internal/application/subscription/dto"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/user"
)

type AgentProfileDTO struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"user_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	AgencyName     string     `json:"agency_name"`
	Bio            string     `json:"bio"`
	Phone          string     `json:"phone"`
	Whatsapp       string     `json:"whatsapp"`
	Verified       bool       `json:"verified"`
	Suspended      bool       `json:"suspended"`
	TrialStartedAt *time.Time `json:"trial_started_at"`
	TrialEndsAt    *time.Time `json:"trial_ends_at"`
	CreatedAt      time.Time  `json:"created_at"`

	Subscription *subdto.StatusDTO `json:"subscription,omitempty"`
}

type DashboardDTO struct {
	Listings      map[string]int64 `json:"listings"`
	TotalListings int64            `json:"total_listings"`
	Saves         int64            `json:"saves"`
	Leads         int64            `json:"leads"`
	Subscription  subdto.StatusDTO `json:"subscription"`
}

// ToAgentProfileDTO fills user fields when u is not nil.
func ToAgentProfileDTO(a *agent.Profile, u *user.User) AgentProfileDTO {
	out := AgentProfileDTO{
		ID:             a.ID(),
		UserID:         a.UserID(),
		AgencyName:     a.AgencyName(),
		Bio:            a.Bio(),
		Phone:          a.Phone(),
		Whatsapp:       a.Whatsapp(),
		Verified:       a.Verified(),
		Suspended:      a.Suspended(),
		TrialStartedAt: a.TrialStartedAt(),
		TrialEndsAt:    a.TrialEndsAt(),
		CreatedAt:      a.CreatedAt(),
	}
	if u != nil {
		out.Name = u.Name()
		out.Email = u.Email().String()
	}
	return out
}
