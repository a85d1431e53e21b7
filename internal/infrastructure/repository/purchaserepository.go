package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/infrastructure/persistence/mappers"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/db"
	apperrors "github.com/estatery/estatery/internal/shared/errors"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(ctx context.Context, p *buyer.Purchase) error {
	model := &models.PurchaseModel{
		BuyerProfileID: p.BuyerID,
		PropertyID:     p.PropertyID,
		Price:          p.Price,
		CreatedAt:      p.CreatedAt,
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return buyer.ErrAlreadyPurchased
		}
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	p.ID = model.ID
	return nil
}

func (r *PurchaseRepository) ListByBuyer(ctx context.Context, buyerID uint) ([]*buyer.Purchase, error) {
	var rows []models.PurchaseModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("buyer_profile_id = ?", buyerID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	out := make([]*buyer.Purchase, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.PurchaseToDomain(&rows[i]))
	}
	return out, nil
}

func (r *PurchaseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.PurchaseModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return count, nil
}
