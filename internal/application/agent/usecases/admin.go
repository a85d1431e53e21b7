package usecases

import (
	"context"
	"fmt"

	"github.com/estatery/estatery/internal/application/agent/dto"
	"github.com/estatery/estatery/internal/application/common"
	commondto "github.com/estatery/estatery/internal/application/common/dto"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type ListAgentsQuery struct {
	Suspended *bool
	Verified  *bool
	Page      int
	PageSize  int
}

type ListAgentsUseCase struct {
	agentRepo agent.Repository
	userRepo  user.Repository
	logger    logger.Interface
}

func NewListAgentsUseCase(agentRepo agent.Repository, userRepo user.Repository, logger logger.Interface) *ListAgentsUseCase {
	return &ListAgentsUseCase{agentRepo: agentRepo, userRepo: userRepo, logger: logger}
}

func (uc *ListAgentsUseCase) Execute(ctx context.Context, q ListAgentsQuery) (*commondto.Page[dto.AgentProfileDTO], error) {
	pg := utils.ValidatePagination(q.Page, q.PageSize)

	agents, total, err := uc.agentRepo.List(ctx, agent.ListFilter{
		Suspended: q.Suspended,
		Verified:  q.Verified,
		Page:      pg.Page,
		PageSize:  pg.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list agents", "error", err)
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	userIDs := make([]uint, 0, len(agents))
	for _, a := range agents {
		userIDs = append(userIDs, a.UserID())
	}
	users, err := uc.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load agent users: %w", err)
	}

	items := make([]dto.AgentProfileDTO, 0, len(agents))
	for _, a := range agents {
		items = append(items, dto.ToAgentProfileDTO(a, users[a.UserID()]))
	}
	return &commondto.Page[dto.AgentProfileDTO]{Items: items, Total: total, Page: pg.Page, PageSize: pg.PageSize}, nil
}

// ModerateAgentCommand sets whichever flags are present.
type ModerateAgentCommand struct {
	AgentID   uint
	Suspended *bool
	Verified  *bool
}

type ModerateAgentUseCase struct {
	agentRepo agent.Repository
	userRepo  user.Repository
	logger    logger.Interface
}

func NewModerateAgentUseCase(agentRepo agent.Repository, userRepo user.Repository, logger logger.Interface) *ModerateAgentUseCase {
	return &ModerateAgentUseCase{agentRepo: agentRepo, userRepo: userRepo, logger: logger}
}

func (uc *ModerateAgentUseCase) Execute(ctx context.Context, cmd ModerateAgentCommand) (*dto.AgentProfileDTO, error) {
	if cmd.Suspended == nil && cmd.Verified == nil {
		return nil, errors.NewValidationError("nothing to change")
	}

	a, err := uc.agentRepo.GetByID(ctx, cmd.AgentID)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	now := biztime.NowUTC()
	if cmd.Suspended != nil {
		a.SetSuspended(*cmd.Suspended, now)
	}
	if cmd.Verified != nil {
		a.SetVerified(*cmd.Verified, now)
	}
	if err := uc.agentRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to moderate agent", "agent_id", a.ID(), "error", err)
		return nil, fmt.Errorf("failed to update agent: %w", err)
	}

	uc.logger.Infow("agent moderated", "agent_id", a.ID(), "suspended", a.Suspended(), "verified", a.Verified())
	return withUser(ctx, uc.userRepo, a)
}
