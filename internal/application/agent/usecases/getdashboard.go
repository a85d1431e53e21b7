package usecases

import (
	"context"
	stderrors "errors"

	"golang.org/x/sync/errgroup"

	"github.com/estatery/estatery/internal/application/agent/dto"
	subdto "github.com/estatery/estatery/internal/application/subscription/dto"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type GetDashboardUseCase struct {
	propertyRepo     property.Repository
	savedRepo        buyer.SavedPropertyRepository
	leadRepo         buyer.LeadRepository
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewGetDashboardUseCase(
	propertyRepo property.Repository,
	savedRepo buyer.SavedPropertyRepository,
	leadRepo buyer.LeadRepository,
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		propertyRepo:     propertyRepo,
		savedRepo:        savedRepo,
		leadRepo:         leadRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context, a *agent.Profile) (*dto.DashboardDTO, error) {
	agentID := a.ID()
	out := &dto.DashboardDTO{Listings: map[string]int64{}}

	var sub *subscription.Subscription
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := uc.propertyRepo.CountByStatus(gctx, &agentID)
		if err != nil {
			uc.logger.Errorw("failed to count agent listings", "agent_id", agentID, "error", err)
			return errors.NewInternalError("failed to count listings")
		}
		for status, n := range counts {
			out.Listings[status.String()] = n
			out.TotalListings += n
		}
		return nil
	})

	g.Go(func() error {
		n, err := uc.savedRepo.CountByAgent(gctx, agentID)
		if err != nil {
			uc.logger.Errorw("failed to count saves", "agent_id", agentID, "error", err)
			return errors.NewInternalError("failed to count saves")
		}
		out.Saves = n
		return nil
	})

	g.Go(func() error {
		n, err := uc.leadRepo.CountByAgent(gctx, agentID)
		if err != nil {
			uc.logger.Errorw("failed to count leads", "agent_id", agentID, "error", err)
			return errors.NewInternalError("failed to count leads")
		}
		out.Leads = n
		return nil
	})

	g.Go(func() error {
		s, err := uc.subscriptionRepo.GetByAgentID(gctx, agentID)
		if err != nil && !stderrors.Is(err, subscription.ErrSubscriptionNotFound) {
			uc.logger.Errorw("failed to load subscription", "agent_id", agentID, "error", err)
			return errors.NewInternalError("failed to load subscription")
		}
		sub = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Subscription = subdto.ToStatusDTO(subscription.Evaluate(sub, a.TrialEndsAt(), biztime.NowUTC()))
	return out, nil
}
