package usecases

import (
	"context"

	"golang.org/x/sync/errgroup"

	dto "github.com/estatery/estatery/internal/application/admin/dto"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/payment"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

// GetAdminDashboardUseCase handles retrieving the admin dashboard snapshot.
type GetAdminDashboardUseCase struct {
	userRepo     user.Repository
	agentRepo    agent.Repository
	buyerRepo    buyer.ProfileRepository
	propertyRepo property.Repository
	purchaseRepo buyer.PurchaseRepository
	leadRepo     buyer.LeadRepository
	paymentRepo  payment.Repository
	currency     string
	logger       logger.Interface
}

func NewGetAdminDashboardUseCase(
	userRepo user.Repository,
	agentRepo agent.Repository,
	buyerRepo buyer.ProfileRepository,
	propertyRepo property.Repository,
	purchaseRepo buyer.PurchaseRepository,
	leadRepo buyer.LeadRepository,
	paymentRepo payment.Repository,
	currency string,
	log logger.Interface,
) *GetAdminDashboardUseCase {
	return &GetAdminDashboardUseCase{
		userRepo:     userRepo,
		agentRepo:    agentRepo,
		buyerRepo:    buyerRepo,
		propertyRepo: propertyRepo,
		purchaseRepo: purchaseRepo,
		leadRepo:     leadRepo,
		paymentRepo:  paymentRepo,
		currency:     currency,
		logger:       log,
	}
}

func (uc *GetAdminDashboardUseCase) Execute(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	uc.logger.Debugw("fetching admin dashboard")

	var (
		out      = &dto.AdminDashboardResponse{Revenue: dto.RevenueStats{Currency: uc.currency}}
		byStatus map[string]int64
		yes      = true
	)

	g, gctx := errgroup.WithContext(ctx)

	// Users
	g.Go(func() error {
		_, total, err := uc.userRepo.List(gctx, user.ListFilter{Page: 1, PageSize: 1})
		if err != nil {
			return errors.NewInternalError("failed to count users")
		}
		out.Users.Total = total
		return nil
	})

	roleCounts := []struct {
		role authorization.Role
		dst  *int64
	}{
		{authorization.RoleBuyer, &out.Users.Buyers},
		{authorization.RoleAgent, &out.Users.Agents},
		{authorization.RoleAdmin, &out.Users.Admins},
	}
	for _, rc := range roleCounts {
		g.Go(func() error {
			count, err := uc.userRepo.CountByRole(gctx, rc.role)
			if err != nil {
				return errors.NewInternalError("failed to count " + rc.role.String() + " users")
			}
			*rc.dst = count
			return nil
		})
	}

	// Agents
	g.Go(func() error {
		count, err := uc.agentRepo.Count(gctx)
		if err != nil {
			return errors.NewInternalError("failed to count agent profiles")
		}
		out.Agents.Profiles = count
		return nil
	})

	g.Go(func() error {
		_, total, err := uc.agentRepo.List(gctx, agent.ListFilter{Verified: &yes, Page: 1, PageSize: 1})
		if err != nil {
			return errors.NewInternalError("failed to count verified agents")
		}
		out.Agents.Verified = total
		return nil
	})

	g.Go(func() error {
		_, total, err := uc.agentRepo.List(gctx, agent.ListFilter{Suspended: &yes, Page: 1, PageSize: 1})
		if err != nil {
			return errors.NewInternalError("failed to count suspended agents")
		}
		out.Agents.Suspended = total
		return nil
	})

	// Properties
	g.Go(func() error {
		counts, err := uc.propertyRepo.CountByStatus(gctx, nil)
		if err != nil {
			return errors.NewInternalError("failed to count properties")
		}
		byStatus = make(map[string]int64, len(counts))
		for s, n := range counts {
			byStatus[s.String()] = n
		}
		return nil
	})

	// Activity
	g.Go(func() error {
		count, err := uc.buyerRepo.Count(gctx)
		if err != nil {
			return errors.NewInternalError("failed to count buyer profiles")
		}
		out.Activity.BuyerProfiles = count
		return nil
	})

	g.Go(func() error {
		count, err := uc.purchaseRepo.Count(gctx)
		if err != nil {
			return errors.NewInternalError("failed to count purchases")
		}
		out.Activity.Purchases = count
		return nil
	})

	g.Go(func() error {
		count, err := uc.leadRepo.Count(gctx)
		if err != nil {
			return errors.NewInternalError("failed to count leads")
		}
		out.Activity.Leads = count
		return nil
	})

	// Revenue
	g.Go(func() error {
		sum, err := uc.paymentRepo.SumSuccessful(gctx)
		if err != nil {
			return errors.NewInternalError("failed to sum payments")
		}
		out.Revenue.Total = sum
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to build admin dashboard", "error", err)
		return nil, err
	}

	out.Properties = byStatus
	return out, nil
}
