package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/infrastructure/persistence/mappers"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/db"
)

type BuyerProfileRepository struct {
	db *gorm.DB
}

func NewBuyerProfileRepository(db *gorm.DB) *BuyerProfileRepository {
	return &BuyerProfileRepository{db: db}
}

func (r *BuyerProfileRepository) Provision(ctx context.Context, p *buyer.Profile) (*buyer.Profile, error) {
	model := mappers.BuyerProfileToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to provision buyer profile: %w", err)
	}

	return r.GetByUserID(ctx, p.UserID())
}

func (r *BuyerProfileRepository) Update(ctx context.Context, p *buyer.Profile) error {
	model := mappers.BuyerProfileToModel(p)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.BuyerProfileModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"phone":              model.Phone,
			"preferred_location": model.PreferredLocation,
			"budget_min":         model.BudgetMin,
			"budget_max":         model.BudgetMax,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update buyer profile: %w", result.Error)
	}
	return nil
}

func (r *BuyerProfileRepository) GetByUserID(ctx context.Context, userID uint) (*buyer.Profile, error) {
	var model models.BuyerProfileModel

	if err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, buyer.ErrBuyerNotFound
		}
		return nil, fmt.Errorf("failed to get buyer profile: %w", err)
	}

	return mappers.BuyerProfileToDomain(&model)
}

func (r *BuyerProfileRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*buyer.Profile, error) {
	out := make(map[uint]*buyer.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.BuyerProfileModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get buyer profiles: %w", err)
	}

	for i := range rows {
		p, err := mappers.BuyerProfileToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out[p.ID()] = p
	}
	return out, nil
}

func (r *BuyerProfileRepository) List(ctx context.Context, page, pageSize int) ([]*buyer.Profile, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.BuyerProfileModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count buyer profiles: %w", err)
	}

	var rows []models.BuyerProfileModel
	if err := query.Order("id ASC").Scopes(db.Paginate(page, pageSize)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list buyer profiles: %w", err)
	}

	profiles := make([]*buyer.Profile, 0, len(rows))
	for i := range rows {
		p, err := mappers.BuyerProfileToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, nil
}

func (r *BuyerProfileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.BuyerProfileModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count buyer profiles: %w", err)
	}
	return count, nil
}
