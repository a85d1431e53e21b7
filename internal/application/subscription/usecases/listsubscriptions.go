package usecases

import (
	"context"
	"fmt"

	commondto "github.com/estatery/estatery/internal/application/common/dto"
	"github.com/estatery/estatery/internal/application/subscription/dto"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(subscriptionRepo subscription.Repository, logger logger.Interface) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{subscriptionRepo: subscriptionRepo, logger: logger}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, page, pageSize int) (*commondto.Page[dto.SubscriptionDTO], error) {
	pg := utils.ValidatePagination(page, pageSize)

	subs, total, err := uc.subscriptionRepo.List(ctx, pg.Page, pg.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	now := biztime.NowUTC()
	items := make([]dto.SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		items = append(items, dto.ToSubscriptionDTO(s, now))
	}
	return &commondto.Page[dto.SubscriptionDTO]{Items: items, Total: total, Page: pg.Page, PageSize: pg.PageSize}, nil
}
