package usecases

import (
	"context"
	"fmt"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type MarkSoldCommand struct {
	AgentID    uint
	PropertyID uint
}

type MarkSoldUseCase struct {
	propertyRepo property.Repository
	logger       logger.Interface
}

func NewMarkSoldUseCase(propertyRepo property.Repository, logger logger.Interface) *MarkSoldUseCase {
	return &MarkSoldUseCase{propertyRepo: propertyRepo, logger: logger}
}

// Execute races fairly with buyer purchases: the flip to SOLD is a single
// conditional update and the loser gets a conflict.
func (uc *MarkSoldUseCase) Execute(ctx context.Context, cmd MarkSoldCommand) (*dto.PropertyDTO, error) {
	p, err := loadOwned(ctx, uc.propertyRepo, cmd.PropertyID, cmd.AgentID)
	if err != nil {
		return nil, err
	}
	if err := p.MarkSold(biztime.NowUTC()); err != nil {
		return nil, common.TranslateError(err)
	}

	ok, err := uc.propertyRepo.MarkSoldIfApproved(ctx, p.ID())
	if err != nil {
		uc.logger.Errorw("failed to mark property sold", "property_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to mark property sold: %w", err)
	}
	if !ok {
		return nil, errors.NewConflictError("property status changed, reload and try again")
	}

	uc.logger.Infow("property marked sold", "property_id", p.ID(), "agent_id", cmd.AgentID)

	out := dto.ToPropertyDTO(p)
	return &out, nil
}
