package mappers

import (
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
)

func AgentProfileToModel(p *agent.Profile) *models.AgentProfileModel {
	return &models.AgentProfileModel{
		ID:             p.ID(),
		UserID:         p.UserID(),
		AgencyName:     p.AgencyName(),
		Bio:            p.Bio(),
		Phone:          p.Phone(),
		Whatsapp:       p.Whatsapp(),
		Verified:       p.Verified(),
		Suspended:      p.Suspended(),
		TrialStartedAt: p.TrialStartedAt(),
		TrialEndsAt:    p.TrialEndsAt(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func AgentProfileToDomain(m *models.AgentProfileModel) (*agent.Profile, error) {
	return agent.ReconstructProfile(m.ID, m.UserID, agent.ProfileData{
		AgencyName:     m.AgencyName,
		Bio:            m.Bio,
		Phone:          m.Phone,
		Whatsapp:       m.Whatsapp,
		Verified:       m.Verified,
		Suspended:      m.Suspended,
		TrialStartedAt: m.TrialStartedAt,
		TrialEndsAt:    m.TrialEndsAt,
	}, m.CreatedAt, m.UpdatedAt)
}

func BuyerProfileToModel(p *buyer.Profile) *models.BuyerProfileModel {
	return &models.BuyerProfileModel{
		ID:                p.ID(),
		UserID:            p.UserID(),
		Phone:             p.Phone(),
		PreferredLocation: p.PreferredLocation(),
		BudgetMin:         p.BudgetMin(),
		BudgetMax:         p.BudgetMax(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

func BuyerProfileToDomain(m *models.BuyerProfileModel) (*buyer.Profile, error) {
	return buyer.ReconstructProfile(
		m.ID, m.UserID,
		m.Phone, m.PreferredLocation,
		m.BudgetMin, m.BudgetMax,
		m.CreatedAt, m.UpdatedAt,
	)
}

func SavedPropertyToDomain(m *models.SavedPropertyModel) *buyer.SavedProperty {
	return &buyer.SavedProperty{
		ID:         m.ID,
		BuyerID:    m.BuyerProfileID,
		PropertyID: m.PropertyID,
		CreatedAt:  m.CreatedAt,
	}
}

func PurchaseToDomain(m *models.PurchaseModel) *buyer.Purchase {
	return &buyer.Purchase{
		ID:         m.ID,
		BuyerID:    m.BuyerProfileID,
		PropertyID: m.PropertyID,
		Price:      m.Price,
		CreatedAt:  m.CreatedAt,
	}
}

func LeadToDomain(m *models.LeadModel) *buyer.Lead {
	return &buyer.Lead{
		ID:         m.ID,
		BuyerID:    m.BuyerProfileID,
		PropertyID: m.PropertyID,
		AgentID:    m.AgentProfileID,
		Message:    m.Message,
		Channel:    buyer.Channel(m.Channel),
		CreatedAt:  m.CreatedAt,
	}
}
