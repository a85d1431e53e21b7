package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/infrastructure/persistence/mappers"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/db"
)

type AgentProfileRepository struct {
	db *gorm.DB
}

func NewAgentProfileRepository(db *gorm.DB) *AgentProfileRepository {
	return &AgentProfileRepository{db: db}
}

func (r *AgentProfileRepository) Provision(ctx context.Context, p *agent.Profile) (*agent.Profile, error) {
	model := mappers.AgentProfileToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to provision agent profile: %w", err)
	}

	return r.GetByUserID(ctx, p.UserID())
}

func (r *AgentProfileRepository) Update(ctx context.Context, p *agent.Profile) error {
	model := mappers.AgentProfileToModel(p)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AgentProfileModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"agency_name": model.AgencyName,
			"bio":         model.Bio,
			"phone":       model.Phone,
			"whatsapp":    model.Whatsapp,
			"verified":    model.Verified,
			"suspended":   model.Suspended,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update agent profile: %w", result.Error)
	}
	return nil
}

func (r *AgentProfileRepository) first(ctx context.Context, query string, args ...any) (*agent.Profile, error) {
	var model models.AgentProfileModel

	if err := db.GetTxFromContext(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, agent.ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get agent profile: %w", err)
	}

	return mappers.AgentProfileToDomain(&model)
}

func (r *AgentProfileRepository) GetByID(ctx context.Context, id uint) (*agent.Profile, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *AgentProfileRepository) GetByUserID(ctx context.Context, userID uint) (*agent.Profile, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *AgentProfileRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*agent.Profile, error) {
	out := make(map[uint]*agent.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.AgentProfileModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get agent profiles: %w", err)
	}

	for i := range rows {
		p, err := mappers.AgentProfileToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out[p.ID()] = p
	}
	return out, nil
}

func (r *AgentProfileRepository) List(ctx context.Context, filter agent.ListFilter) ([]*agent.Profile, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.AgentProfileModel{})

	if filter.Suspended != nil {
		query = query.Where("suspended = ?", *filter.Suspended)
	}
	if filter.Verified != nil {
		query = query.Where("verified = ?", *filter.Verified)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count agent profiles: %w", err)
	}

	var rows []models.AgentProfileModel
	if err := query.Order("id ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list agent profiles: %w", err)
	}

	profiles := make([]*agent.Profile, 0, len(rows))
	for i := range rows {
		p, err := mappers.AgentProfileToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, nil
}

func (r *AgentProfileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.AgentProfileModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count agent profiles: %w", err)
	}
	return count, nil
}
