package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/infrastructure/persistence/mappers"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/db"
)

type SavedPropertyRepository struct {
	db *gorm.DB
}

func NewSavedPropertyRepository(db *gorm.DB) *SavedPropertyRepository {
	return &SavedPropertyRepository{db: db}
}

func (r *SavedPropertyRepository) Save(ctx context.Context, s *buyer.SavedProperty) (*buyer.SavedProperty, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	model := &models.SavedPropertyModel{
		BuyerProfileID: s.BuyerID,
		PropertyID:     s.PropertyID,
		CreatedAt:      s.CreatedAt,
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "buyer_profile_id"}, {Name: "property_id"}},
		DoNothing: true,
	}).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save property: %w", err)
	}

	var stored models.SavedPropertyModel
	if err := tx.Where("buyer_profile_id = ? AND property_id = ?", s.BuyerID, s.PropertyID).
		First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to load saved property: %w", err)
	}
	return mappers.SavedPropertyToDomain(&stored), nil
}

func (r *SavedPropertyRepository) Delete(ctx context.Context, buyerID, propertyID uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("buyer_profile_id = ? AND property_id = ?", buyerID, propertyID).
		Delete(&models.SavedPropertyModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove saved property: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *SavedPropertyRepository) ListByBuyer(ctx context.Context, buyerID uint) ([]*buyer.SavedProperty, error) {
	var rows []models.SavedPropertyModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("buyer_profile_id = ?", buyerID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved properties: %w", err)
	}

	out := make([]*buyer.SavedProperty, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.SavedPropertyToDomain(&rows[i]))
	}
	return out, nil
}

// CountByAgent counts saves across all properties owned by the agent.
func (r *SavedPropertyRepository) CountByAgent(ctx context.Context, agentID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SavedPropertyModel{}).
		Joins("JOIN properties ON properties.id = saved_properties.property_id").
		Where("properties.agent_profile_id = ?", agentID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count saved properties: %w", err)
	}
	return count, nil
}
