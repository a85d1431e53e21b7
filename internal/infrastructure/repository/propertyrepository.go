package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/estatery/estatery/internal/domain/property"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/infrastructure/persistence/mappers"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/db"
	"github.com/estatery/estatery/internal/shared/logger"
)

type PropertyRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPropertyRepository(db *gorm.DB, log logger.Interface) *PropertyRepository {
	return &PropertyRepository{db: db, logger: log}
}

func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) error {
	model := mappers.PropertyToModel(p)
	model.Images = mappers.PropertyImagesToModels(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create property", "title", model.Title, "error", err)
		return fmt.Errorf("failed to create property: %w", err)
	}

	p.SetID(model.ID)
	return nil
}

// Update never touches a SOLD row, even when p was loaded before the sale
// committed; that case returns ErrPropertySold.
func (r *PropertyRepository) Update(ctx context.Context, p *property.Property, replaceImages bool) error {
	model := mappers.PropertyToModel(p)

	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PropertyModel{}).
			Where("id = ? AND status <> ?", model.ID, vo.StatusSold.String()).
			Updates(map[string]any{
				"title":            model.Title,
				"location":         model.Location,
				"description":      model.Description,
				"price":            model.Price,
				"status":           model.Status,
				"rejection_reason": model.RejectionReason,
				"category":         model.Category,
				"property_type":    model.PropertyType,
				"transaction_type": model.TransactionType,
				"bedrooms":         model.Bedrooms,
				"bathrooms":        model.Bathrooms,
				"size":             model.Size,
				"furnishing":       model.Furnishing,
				"agent_profile_id": model.AgentProfileID,
				"updated_at":       model.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update property: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			if err := r.unchangedReason(tx, model.ID); err != nil {
				return err
			}
		}

		if !replaceImages {
			return nil
		}
		if err := tx.Where("property_id = ?", model.ID).Delete(&models.PropertyImageModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear property images: %w", err)
		}
		images := mappers.PropertyImagesToModels(p)
		if len(images) == 0 {
			return nil
		}
		if err := tx.Create(&images).Error; err != nil {
			return fmt.Errorf("failed to store property images: %w", err)
		}
		return nil
	})
}

// Delete removes the property with its images and bookmarks. SOLD rows are
// kept for their purchases and return ErrPropertySold.
func (r *PropertyRepository) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := r.unchangedReason(tx, id); err != nil {
			return err
		}
		for _, dep := range []any{&models.PropertyImageModel{}, &models.SavedPropertyModel{}, &models.LeadModel{}} {
			if err := tx.Where("property_id = ?", id).Delete(dep).Error; err != nil {
				return fmt.Errorf("failed to delete property dependents: %w", err)
			}
		}

		result := tx.Where("status <> ?", vo.StatusSold.String()).Delete(&models.PropertyModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete property: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// sold between the check above and the delete; rolls the dependents back
			if err := r.unchangedReason(tx, id); err != nil {
				return err
			}
			return property.ErrPropertySold
		}
		return nil
	})
}

// unchangedReason explains a guarded write that matched no row: the property
// is gone or SOLD. nil means the row exists and is still writable.
func (r *PropertyRepository) unchangedReason(tx *gorm.DB, id uint) error {
	var model models.PropertyModel
	err := tx.Select("id", "status").First(&model, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return property.ErrPropertyNotFound
	case err != nil:
		return fmt.Errorf("failed to check property status: %w", err)
	case model.Status == vo.StatusSold.String():
		return property.ErrPropertySold
	}
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id uint) (*property.Property, error) {
	var model models.PropertyModel

	if err := db.GetTxFromContext(ctx, r.db).
		Preload("Images").
		First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, property.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return mappers.PropertyToDomain(&model)
}

func (r *PropertyRepository) List(ctx context.Context, filter property.Filter) ([]*property.Property, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.PropertyModel{})

	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.AgentID != nil {
		query = query.Where("agent_profile_id = ?", *filter.AgentID)
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(loc)+"%")
	}
	if cat := strings.TrimSpace(filter.Category); cat != "" {
		query = query.Where("category = ?", strings.ToUpper(cat))
	}
	if filter.TransactionType != "" {
		query = query.Where("transaction_type = ?", filter.TransactionType.String())
	}
	if filter.Furnishing != "" {
		query = query.Where("furnishing = ?", filter.Furnishing.String())
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinBedrooms != nil {
		query = query.Where("bedrooms >= ?", *filter.MinBedrooms)
	}
	if filter.ExcludeSuspendedAgents {
		suspended := tx.Model(&models.AgentProfileModel{}).Select("id").Where("suspended = ?", true)
		query = query.Where("agent_profile_id IS NULL OR agent_profile_id NOT IN (?)", suspended)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count properties", "error", err)
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	var rows []models.PropertyModel
	if err := query.Preload("Images").
		Order("id ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list properties", "error", err)
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}

	props := make([]*property.Property, 0, len(rows))
	for i := range rows {
		p, err := mappers.PropertyToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		props = append(props, p)
	}
	return props, total, nil
}

func (r *PropertyRepository) MarkSoldIfApproved(ctx context.Context, id uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PropertyModel{}).
		Where("id = ? AND status = ?", id, vo.StatusApproved.String()).
		Updates(map[string]any{
			"status":           vo.StatusSold.String(),
			"rejection_reason": nil,
			"updated_at":       biztime.NowUTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark property sold: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *PropertyRepository) CountByStatus(ctx context.Context, agentID *uint) (map[vo.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	query := db.GetTxFromContext(ctx, r.db).Model(&models.PropertyModel{})
	if agentID != nil {
		query = query.Where("agent_profile_id = ?", *agentID)
	}
	if err := query.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count properties by status: %w", err)
	}

	out := make(map[vo.Status]int64, len(vo.ValidStatuses))
	for s := range vo.ValidStatuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[vo.Status(row.Status)] = row.Count
	}
	return out, nil
}
