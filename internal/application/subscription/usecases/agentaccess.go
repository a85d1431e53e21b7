package usecases

import (
	"context"
	stderrors "errors"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

// AgentAccessUseCase resolves the agent profile behind a token and decides
// whether that agent may write.
type AgentAccessUseCase struct {
	agentRepo        agent.Repository
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewAgentAccessUseCase(
	agentRepo agent.Repository,
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *AgentAccessUseCase {
	return &AgentAccessUseCase{
		agentRepo:        agentRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Resolve returns the agent profile of userID. A token holding the AGENT role
// without a profile is refused.
func (uc *AgentAccessUseCase) Resolve(ctx context.Context, userID uint) (*agent.Profile, error) {
	a, err := uc.agentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, agent.ErrAgentNotFound) {
			return nil, errors.NewForbiddenError("agent profile required")
		}
		return nil, err
	}
	return a, nil
}

// Decide evaluates the gate without enforcing it.
func (uc *AgentAccessUseCase) Decide(ctx context.Context, a *agent.Profile) (subscription.Decision, error) {
	sub, err := uc.subscriptionRepo.GetByAgentID(ctx, a.ID())
	if err != nil && !stderrors.Is(err, subscription.ErrSubscriptionNotFound) {
		uc.logger.Errorw("failed to load subscription", "agent_id", a.ID(), "error", err)
		return subscription.Decision{}, err
	}
	return subscription.Evaluate(sub, a.TrialEndsAt(), biztime.NowUTC()), nil
}

// AuthorizeWrite refuses suspended agents with 403 and agents without an
// active plan or running trial with 402.
func (uc *AgentAccessUseCase) AuthorizeWrite(ctx context.Context, a *agent.Profile) error {
	if a.Suspended() {
		return common.TranslateError(agent.ErrAgentSuspended)
	}
	d, err := uc.Decide(ctx, a)
	if err != nil {
		return err
	}
	if !d.Allowed {
		uc.logger.Infow("agent write refused by subscription gate", "agent_id", a.ID(), "status", d.Status)
		return errors.NewPaymentRequiredError(string(d.Status), d.TrialEndsAt, d.ExpiresAt)
	}
	return nil
}
