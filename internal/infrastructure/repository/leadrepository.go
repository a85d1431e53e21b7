package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/infrastructure/persistence/mappers"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/db"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, l *buyer.Lead) error {
	model := &models.LeadModel{
		BuyerProfileID: l.BuyerID,
		PropertyID:     l.PropertyID,
		AgentProfileID: l.AgentID,
		Message:        l.Message,
		Channel:        string(l.Channel),
		CreatedAt:      l.CreatedAt,
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	l.ID = model.ID
	return nil
}

func (r *LeadRepository) FindRecent(ctx context.Context, buyerID, propertyID uint, since time.Time) (*buyer.Lead, error) {
	var model models.LeadModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("buyer_profile_id = ? AND property_id = ? AND created_at >= ?", buyerID, propertyID, since).
		Order("created_at DESC, id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find recent lead: %w", err)
	}

	return mappers.LeadToDomain(&model), nil
}

func (r *LeadRepository) CountByAgent(ctx context.Context, agentID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.LeadModel{}).
		Where("agent_profile_id = ?", agentID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return count, nil
}

func (r *LeadRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.LeadModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return count, nil
}
