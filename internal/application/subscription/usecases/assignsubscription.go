package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/subscription/dto"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

// AssignSubscriptionCommand targets an agent profile by AgentID, or a user by
// UserID, in which case the AGENT role and profile are provisioned first.
// ExpiresAt and DurationDays are mutually exclusive; with neither the plan
// has no paid window.
type AssignSubscriptionCommand struct {
	AgentID      uint
	UserID       uint
	Plan         string
	ExpiresAt    *time.Time
	DurationDays *int
}

type AssignSubscriptionUseCase struct {
	agentRepo        agent.Repository
	userRepo         user.Repository
	subscriptionRepo subscription.Repository
	txManager        TransactionManager
	trial            time.Duration
	logger           logger.Interface
}

func NewAssignSubscriptionUseCase(
	agentRepo agent.Repository,
	userRepo user.Repository,
	subscriptionRepo subscription.Repository,
	txManager TransactionManager,
	trial time.Duration,
	logger logger.Interface,
) *AssignSubscriptionUseCase {
	return &AssignSubscriptionUseCase{
		agentRepo:        agentRepo,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		trial:            trial,
		logger:           logger,
	}
}

func (uc *AssignSubscriptionUseCase) Execute(ctx context.Context, cmd AssignSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	plan, err := subscription.ParsePlan(cmd.Plan)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if (cmd.AgentID == 0) == (cmd.UserID == 0) {
		return nil, errors.NewValidationError("exactly one of agent_id or user_id is required")
	}

	now := biztime.NowUTC()
	expiresAt, err := resolveExpiry(cmd, now)
	if err != nil {
		return nil, err
	}

	var sub *subscription.Subscription
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		a, err := uc.targetAgent(ctx, cmd, now)
		if err != nil {
			return err
		}

		sub, err = uc.subscriptionRepo.GetByAgentID(ctx, a.ID())
		switch {
		case err == nil:
			if err := sub.Assign(plan, expiresAt, now); err != nil {
				return err
			}
		case stderrors.Is(err, subscription.ErrSubscriptionNotFound):
			sub, err = subscription.NewSubscription(a.ID(), plan, expiresAt, now)
			if err != nil {
				return err
			}
		default:
			return err
		}
		return uc.subscriptionRepo.Save(ctx, sub)
	})
	if err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Warnw("failed to assign subscription", "agent_id", cmd.AgentID, "user_id", cmd.UserID, "error", err)
		}
		return nil, common.TranslateError(err)
	}

	uc.logger.Infow("subscription assigned", "agent_id", sub.AgentID(), "plan", plan, "expires_at", expiresAt)
	out := dto.ToSubscriptionDTO(sub, now)
	return &out, nil
}

func (uc *AssignSubscriptionUseCase) targetAgent(ctx context.Context, cmd AssignSubscriptionCommand, now time.Time) (*agent.Profile, error) {
	if cmd.AgentID != 0 {
		return uc.agentRepo.GetByID(ctx, cmd.AgentID)
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if u.AttachRole(authorization.RoleAgent, now) {
		if err := uc.userRepo.Update(ctx, u); err != nil {
			return nil, err
		}
	}
	p, err := agent.NewProfile(u.ID(), uc.trial, now)
	if err != nil {
		return nil, err
	}
	return uc.agentRepo.Provision(ctx, p)
}

func resolveExpiry(cmd AssignSubscriptionCommand, now time.Time) (*time.Time, error) {
	switch {
	case cmd.ExpiresAt != nil && cmd.DurationDays != nil:
		return nil, errors.NewValidationError("expires_at and duration_days are mutually exclusive")
	case cmd.DurationDays != nil:
		if *cmd.DurationDays <= 0 {
			return nil, errors.NewValidationError("duration_days must be positive")
		}
		t := now.Add(time.Duration(*cmd.DurationDays) * 24 * time.Hour)
		return &t, nil
	case cmd.ExpiresAt != nil:
		t := cmd.ExpiresAt.UTC()
		return &t, nil
	}
	return nil, nil
}
