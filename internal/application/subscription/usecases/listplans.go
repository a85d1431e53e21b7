package usecases

import (
	"github.com/estatery/estatery/internal/application/subscription/dto"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/shared/config"
)

type ListPlansUseCase struct {
	cfg config.SubscriptionConfig
}

func NewListPlansUseCase(cfg config.SubscriptionConfig) *ListPlansUseCase {
	return &ListPlansUseCase{cfg: cfg}
}

func (uc *ListPlansUseCase) Execute() []dto.PlanDTO {
	out := make([]dto.PlanDTO, 0, len(subscription.Plans))
	for _, p := range subscription.Plans {
		item := dto.PlanDTO{
			Plan:     p.String(),
			Price:    PlanPrice(uc.cfg, p),
			Currency: uc.cfg.Currency,
			Paid:     p.IsPaid(),
			Priority: p.Priority(),
		}
		if p.IsPaid() {
			item.DurationDays = uc.cfg.PlanDurationDays
		}
		out = append(out, item)
	}
	return out
}

// PlanPrice returns the configured price in minor units. FREE costs nothing.
func PlanPrice(cfg config.SubscriptionConfig, p subscription.Plan) int64 {
	switch p {
	case subscription.PlanBasic:
		return cfg.Plans.Basic
	case subscription.PlanPremium:
		return cfg.Plans.Premium
	}
	return 0
}
