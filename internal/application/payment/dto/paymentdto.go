package dto

import (
	"time"

	subdto "github.com/estatery/estatery/internal/application/subscription/dto"
	"github.com/estatery/estatery/internal/domain/payment"
)

type PaymentDTO struct {
	ID        uint       `json:"id"`
	Reference string     `json:"reference"`
	AgentID   uint       `json:"agent_id"`
	Plan      string     `json:"plan"`
	Amount    int64      `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// InitializeResultDTO points the agent at the hosted checkout page.
type InitializeResultDTO struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Plan             string `json:"plan"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
}

type VerifyResultDTO struct {
	Payment      PaymentDTO              `json:"payment"`
	Subscription *subdto.SubscriptionDTO `json:"subscription,omitempty"`
}

func ToPaymentDTO(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        p.ID(),
		Reference: p.Reference(),
		AgentID:   p.AgentID(),
		Plan:      p.Plan().String(),
		Amount:    p.Amount(),
		Currency:  p.Currency(),
		Status:    p.Status().String(),
		PaidAt:    p.PaidAt(),
		CreatedAt: p.CreatedAt(),
	}
}
