package mappers

import (
	"github.com/estatery/estatery/internal/domain/payment"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
)

func SubscriptionToModel(s *subscription.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:             s.ID(),
		AgentProfileID: s.AgentID(),
		Plan:           s.Plan().String(),
		ExpiresAt:      s.ExpiresAt(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func SubscriptionToDomain(m *models.SubscriptionModel) (*subscription.Subscription, error) {
	return subscription.ReconstructSubscription(
		m.ID, m.AgentProfileID,
		subscription.Plan(m.Plan),
		m.ExpiresAt,
		m.CreatedAt, m.UpdatedAt,
	)
}

func PaymentToModel(p *payment.Payment) *models.PaymentModel {
	m := &models.PaymentModel{
		ID:               p.ID(),
		Reference:        p.Reference(),
		AgentProfileID:   p.AgentID(),
		Plan:             p.Plan().String(),
		Amount:           p.Amount(),
		Currency:         p.Currency(),
		Status:           p.Status().String(),
		AuthorizationURL: p.AuthorizationURL(),
		PaidAt:           p.PaidAt(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
	if len(p.GatewayResponse()) > 0 {
		m.GatewayResponse = p.GatewayResponse()
	}
	return m
}

func PaymentToDomain(m *models.PaymentModel) (*payment.Payment, error) {
	raw := map[string]any(m.GatewayResponse)
	if raw == nil {
		raw = make(map[string]any)
	}
	return payment.ReconstructPayment(
		m.ID, m.Reference, m.AgentProfileID,
		subscription.Plan(m.Plan),
		m.Amount, m.Currency,
		payment.PaymentData{
			Status:           payment.Status(m.Status),
			AuthorizationURL: m.AuthorizationURL,
			GatewayResponse:  raw,
			PaidAt:           m.PaidAt,
		},
		m.CreatedAt, m.UpdatedAt,
	)
}
