package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/domain/property"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/infrastructure/storage"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type UpdateAgentPropertyCommand struct {
	AgentID    uint
	PropertyID uint
	Patch      PatchInput
	// Status may only be PENDING, which submits the listing for review.
	Status *string
	Images []storage.Upload
}

type UpdateAgentPropertyUseCase struct {
	propertyRepo property.Repository
	images       ImageStore
	logger       logger.Interface
}

func NewUpdateAgentPropertyUseCase(
	propertyRepo property.Repository,
	images ImageStore,
	logger logger.Interface,
) *UpdateAgentPropertyUseCase {
	return &UpdateAgentPropertyUseCase{
		propertyRepo: propertyRepo,
		images:       images,
		logger:       logger,
	}
}

func (uc *UpdateAgentPropertyUseCase) Execute(ctx context.Context, cmd UpdateAgentPropertyCommand) (*dto.PropertyDTO, error) {
	status, err := parseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	if status != nil && *status != vo.StatusPending {
		return nil, errors.NewValidationError("agents can only submit a listing for review", "status must be PENDING")
	}
	patch, err := cmd.Patch.toPatch()
	if err != nil {
		return nil, err
	}

	p, err := loadOwned(ctx, uc.propertyRepo, cmd.PropertyID, cmd.AgentID)
	if err != nil {
		return nil, err
	}
	if err := p.EnsureEditable(); err != nil {
		return nil, common.TranslateError(err)
	}

	now := biztime.NowUTC()
	if !patch.IsEmpty() {
		if err := p.ApplyPatch(patch, now); err != nil {
			return nil, common.TranslateError(err)
		}
	}
	if status != nil && p.Status() != vo.StatusPending {
		if err := p.Submit(now); err != nil {
			return nil, common.TranslateError(err)
		}
	}

	oldURLs := imageURLs(p)
	replace := len(cmd.Images) > 0
	newURLs, err := storeImages(uc.images, cmd.Images)
	if err != nil {
		return nil, err
	}
	if replace {
		if err := p.ReplaceImages(newURLs, now); err != nil {
			uc.images.Remove(newURLs)
			return nil, common.TranslateError(err)
		}
	}

	if err := uc.propertyRepo.Update(ctx, p, replace); err != nil {
		uc.images.Remove(newURLs)
		if lostRace(err) {
			return nil, common.TranslateError(err)
		}
		uc.logger.Errorw("failed to update property", "property_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	if replace {
		uc.images.Remove(oldURLs)
	}

	uc.logger.Infow("property updated", "property_id", p.ID(), "agent_id", cmd.AgentID, "status", p.Status(), "images_replaced", replace)

	out := dto.ToPropertyDTO(p)
	return &out, nil
}

// loadOwned fetches a property and checks it belongs to the agent profile.
func loadOwned(ctx context.Context, repo property.Repository, propertyID, agentID uint) (*property.Property, error) {
	p, err := repo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !p.IsOwnedBy(agentID) {
		return nil, errors.NewForbiddenError("you do not own this property")
	}
	return p, nil
}

// lostRace reports a write refused because the row was sold or deleted after it was loaded.
func lostRace(err error) bool {
	return stderrors.Is(err, property.ErrPropertySold) || stderrors.Is(err, property.ErrPropertyNotFound)
}
