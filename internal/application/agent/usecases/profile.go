package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/estatery/estatery/internal/application/agent/dto"
	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/logger"
)

type GetProfileUseCase struct {
	agentRepo agent.Repository
	userRepo  user.Repository
	logger    logger.Interface
}

func NewGetProfileUseCase(agentRepo agent.Repository, userRepo user.Repository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{agentRepo: agentRepo, userRepo: userRepo, logger: logger}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, agentID uint) (*dto.AgentProfileDTO, error) {
	a, err := uc.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	return withUser(ctx, uc.userRepo, a)
}

type UpdateProfileCommand struct {
	AgentID    uint
	AgencyName *string
	Bio        *string
	Phone      *string
	Whatsapp   *string
}

type UpdateProfileUseCase struct {
	agentRepo agent.Repository
	userRepo  user.Repository
	logger    logger.Interface
}

func NewUpdateProfileUseCase(agentRepo agent.Repository, userRepo user.Repository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{agentRepo: agentRepo, userRepo: userRepo, logger: logger}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.AgentProfileDTO, error) {
	a, err := uc.agentRepo.GetByID(ctx, cmd.AgentID)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	a.Apply(agent.Patch{
		AgencyName: cmd.AgencyName,
		Bio:        cmd.Bio,
		Phone:      cmd.Phone,
		Whatsapp:   cmd.Whatsapp,
	}, biztime.NowUTC())

	if err := uc.agentRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to update agent profile", "agent_id", a.ID(), "error", err)
		return nil, fmt.Errorf("failed to update agent profile: %w", err)
	}

	uc.logger.Infow("agent profile updated", "agent_id", a.ID())
	return withUser(ctx, uc.userRepo, a)
}

func withUser(ctx context.Context, userRepo user.Repository, a *agent.Profile) (*dto.AgentProfileDTO, error) {
	u, err := userRepo.GetByID(ctx, a.UserID())
	if err != nil && !stderrors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}
	out := dto.ToAgentProfileDTO(a, u)
	return &out, nil
}
