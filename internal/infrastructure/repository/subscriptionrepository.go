package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/infrastructure/persistence/mappers"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/db"
	"github.com/estatery/estatery/internal/shared/logger"
)

type SubscriptionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, log logger.Interface) *SubscriptionRepository {
	return &SubscriptionRepository{db: db, logger: log}
}

// Save keeps one row per agent profile: a new aggregate for an agent that
// already has a row updates that row.
func (r *SubscriptionRepository) Save(ctx context.Context, s *subscription.Subscription) error {
	tx := db.GetTxFromContext(ctx, r.db)
	model := mappers.SubscriptionToModel(s)

	if model.ID == 0 {
		var existing models.SubscriptionModel
		err := tx.Where("agent_profile_id = ?", model.AgentProfileID).First(&existing).Error
		switch {
		case err == nil:
			model.ID = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(model).Error; err != nil {
				r.logger.Errorw("failed to create subscription", "agent_id", model.AgentProfileID, "error", err)
				return fmt.Errorf("failed to create subscription: %w", err)
			}
			s.SetID(model.ID)
			return nil
		default:
			return fmt.Errorf("failed to load subscription: %w", err)
		}
	}

	if err := tx.Model(&models.SubscriptionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"plan":       model.Plan,
			"expires_at": model.ExpiresAt,
			"updated_at": model.UpdatedAt,
		}).Error; err != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	s.SetID(model.ID)
	return nil
}

func (r *SubscriptionRepository) GetByAgentID(ctx context.Context, agentID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).Where("agent_profile_id = ?", agentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return mappers.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepository) GetByAgentIDs(ctx context.Context, agentIDs []uint) (map[uint]*subscription.Subscription, error) {
	out := make(map[uint]*subscription.Subscription, len(agentIDs))
	if len(agentIDs) == 0 {
		return out, nil
	}

	var rows []models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("agent_profile_id IN ?", agentIDs).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}

	for i := range rows {
		s, err := mappers.SubscriptionToDomain(&rows[i])
		if err != nil {
			r.logger.Warnw("skipping unreadable subscription", "id", rows[i].ID, "error", err)
			continue
		}
		out[s.AgentID()] = s
	}
	return out, nil
}

func (r *SubscriptionRepository) List(ctx context.Context, page, pageSize int) ([]*subscription.Subscription, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	var rows []models.SubscriptionModel
	if err := query.Order("id ASC").Scopes(db.Paginate(page, pageSize)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	subs := make([]*subscription.Subscription, 0, len(rows))
	for i := range rows {
		s, err := mappers.SubscriptionToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, s)
	}
	return subs, total, nil
}
