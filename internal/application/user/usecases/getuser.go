package usecases

import (
	"context"
	stderrors "errors"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/user/dto"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/logger"
)

type GetCurrentUserUseCase struct {
	userRepo  user.Repository
	agentRepo agent.Repository
	buyerRepo buyer.ProfileRepository
	logger    logger.Interface
}

func NewGetCurrentUserUseCase(
	userRepo user.Repository,
	agentRepo agent.Repository,
	buyerRepo buyer.ProfileRepository,
	logger logger.Interface,
) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		userRepo:  userRepo,
		agentRepo: agentRepo,
		buyerRepo: buyerRepo,
		logger:    logger,
	}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userID uint) (*dto.MeDTO, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	out := &dto.MeDTO{UserDTO: dto.ToUserDTO(u)}

	a, err := uc.agentRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		agentID := a.ID()
		out.AgentProfileID = &agentID
		out.TrialEndsAt = a.TrialEndsAt()
	case !stderrors.Is(err, agent.ErrAgentNotFound):
		return nil, err
	}

	b, err := uc.buyerRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		buyerID := b.ID()
		out.BuyerProfileID = &buyerID
	case !stderrors.Is(err, buyer.ErrBuyerNotFound):
		return nil, err
	}

	return out, nil
}
