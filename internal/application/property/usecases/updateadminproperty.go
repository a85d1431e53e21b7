package usecases

import (
	"context"
	"fmt"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/infrastructure/storage"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/logger"
)

type UpdateAdminPropertyCommand struct {
	PropertyID      uint
	Patch           PatchInput
	Status          *string
	RejectionReason *string
	Images          []storage.Upload
}

type UpdateAdminPropertyUseCase struct {
	propertyRepo property.Repository
	images       ImageStore
	logger       logger.Interface
}

func NewUpdateAdminPropertyUseCase(
	propertyRepo property.Repository,
	images ImageStore,
	logger logger.Interface,
) *UpdateAdminPropertyUseCase {
	return &UpdateAdminPropertyUseCase{
		propertyRepo: propertyRepo,
		images:       images,
		logger:       logger,
	}
}

// Execute may assign any status directly. SOLD listings stay untouched.
func (uc *UpdateAdminPropertyUseCase) Execute(ctx context.Context, cmd UpdateAdminPropertyCommand) (*dto.PropertyDTO, error) {
	status, err := parseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	patch, err := cmd.Patch.toPatch()
	if err != nil {
		return nil, err
	}

	p, err := uc.propertyRepo.GetByID(ctx, cmd.PropertyID)
	if err != nil {
		return nil, common.TranslateError(err)
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

	if status != nil {
		if err := p.AssignStatus(*status, cmd.RejectionReason, now); err != nil {
			uc.images.Remove(newURLs)
			return nil, common.TranslateError(err)
		}
	}

	if err := uc.propertyRepo.Update(ctx, p, replace); err != nil {
		uc.images.Remove(newURLs)
		if lostRace(err) {
			return nil, common.TranslateError(err)
		}
		uc.logger.Errorw("failed to update admin property", "property_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	if replace {
		uc.images.Remove(oldURLs)
	}

	uc.logger.Infow("admin property updated", "property_id", p.ID(), "status", p.Status(), "images_replaced", replace)

	out := dto.ToPropertyDTO(p)
	return &out, nil
}
