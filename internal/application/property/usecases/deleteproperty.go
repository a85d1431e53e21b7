package usecases

import (
	"context"
	"fmt"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/shared/logger"
)

type DeletePropertyCommand struct {
	PropertyID uint
	// AgentID restricts the delete to the owner; nil is the admin path.
	AgentID *uint
}

type DeletePropertyUseCase struct {
	propertyRepo property.Repository
	images       ImageStore
	logger       logger.Interface
}

func NewDeletePropertyUseCase(
	propertyRepo property.Repository,
	images ImageStore,
	logger logger.Interface,
) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{
		propertyRepo: propertyRepo,
		images:       images,
		logger:       logger,
	}
}

func (uc *DeletePropertyUseCase) Execute(ctx context.Context, cmd DeletePropertyCommand) error {
	var (
		p   *property.Property
		err error
	)
	if cmd.AgentID != nil {
		p, err = loadOwned(ctx, uc.propertyRepo, cmd.PropertyID, *cmd.AgentID)
	} else {
		p, err = uc.propertyRepo.GetByID(ctx, cmd.PropertyID)
		err = common.TranslateError(err)
	}
	if err != nil {
		return err
	}

	// Purchases reference sold listings.
	if err := p.EnsureEditable(); err != nil {
		return common.TranslateError(err)
	}

	if err := uc.propertyRepo.Delete(ctx, p.ID()); err != nil {
		if lostRace(err) {
			return common.TranslateError(err)
		}
		uc.logger.Errorw("failed to delete property", "property_id", p.ID(), "error", err)
		return fmt.Errorf("failed to delete property: %w", common.TranslateError(err))
	}
	uc.images.Remove(imageURLs(p))

	uc.logger.Infow("property deleted", "property_id", p.ID(), "by_admin", cmd.AgentID == nil)
	return nil
}
