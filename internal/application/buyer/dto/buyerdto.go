package dto

import (
	"time"

	propertydto "github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/user"
)

type BuyerProfileDTO struct {
	ID                uint      `json:"id"`
	UserID            uint      `json:"user_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	PreferredLocation string    `json:"preferred_location"`
	BudgetMin         *int64    `json:"budget_min"`
	BudgetMax         *int64    `json:"budget_max"`
	CreatedAt         time.Time `json:"created_at"`
}

type SavedPropertyDTO struct {
	ID         uint                     `json:"id"`
	PropertyID uint                     `json:"property_id"`
	SavedAt    time.Time                `json:"saved_at"`
	Property   *propertydto.PropertyDTO `json:"property"`
}

type PurchaseDTO struct {
	ID          uint                     `json:"id"`
	PropertyID  uint                     `json:"property_id"`
	Price       int64                    `json:"price"`
	PurchasedAt time.Time                `json:"purchased_at"`
	Property    *propertydto.PropertyDTO `json:"property"`
}

type LeadDTO struct {
	ID         uint      `json:"id"`
	PropertyID uint      `json:"property_id"`
	AgentID    uint      `json:"agent_id"`
	Message    string    `json:"message"`
	Channel    string    `json:"channel"`
	CreatedAt  time.Time `json:"created_at"`
}

// ContactResultDTO reports whether a new lead was recorded and how to reach the agent.
type ContactResultDTO struct {
	Lead         LeadDTO `json:"lead"`
	Created      bool    `json:"created"`
	WhatsAppLink string  `json:"whatsapp_link,omitempty"`
	AgentEmail   string  `json:"agent_email,omitempty"`
	AgentPhone   string  `json:"agent_phone,omitempty"`
}

func ToBuyerProfileDTO(p *buyer.Profile, u *user.User) BuyerProfileDTO {
	out := BuyerProfileDTO{
		ID:                p.ID(),
		UserID:            p.UserID(),
		Phone:             p.Phone(),
		PreferredLocation: p.PreferredLocation(),
		BudgetMin:         p.BudgetMin(),
		BudgetMax:         p.BudgetMax(),
		CreatedAt:         p.CreatedAt(),
	}
	if u != nil {
		out.Name = u.Name()
		out.Email = u.Email().String()
		if out.Phone == "" {
			out.Phone = u.Phone()
		}
	}
	return out
}

func ToLeadDTO(l *buyer.Lead) LeadDTO {
	return LeadDTO{
		ID:         l.ID,
		PropertyID: l.PropertyID,
		AgentID:    l.AgentID,
		Message:    l.Message,
		Channel:    string(l.Channel),
		CreatedAt:  l.CreatedAt,
	}
}
