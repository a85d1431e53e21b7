package usecases

import (
	"context"
	"fmt"

	"github.com/estatery/estatery/internal/application/buyer/dto"
	"github.com/estatery/estatery/internal/application/common"
	propertydto "github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type SavePropertyCommand struct {
	BuyerID    uint
	PropertyID uint
}

type SavePropertyUseCase struct {
	savedRepo    buyer.SavedPropertyRepository
	propertyRepo property.Repository
	logger       logger.Interface
}

func NewSavePropertyUseCase(savedRepo buyer.SavedPropertyRepository, propertyRepo property.Repository, logger logger.Interface) *SavePropertyUseCase {
	return &SavePropertyUseCase{savedRepo: savedRepo, propertyRepo: propertyRepo, logger: logger}
}

// Execute bookmarks an APPROVED property. Saving twice returns the first bookmark.
func (uc *SavePropertyUseCase) Execute(ctx context.Context, cmd SavePropertyCommand) (*dto.SavedPropertyDTO, error) {
	p, err := uc.propertyRepo.GetByID(ctx, cmd.PropertyID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !p.IsPubliclyVisible() {
		return nil, errors.NewNotFoundError("property not found")
	}

	saved, err := uc.savedRepo.Save(ctx, &buyer.SavedProperty{
		BuyerID:    cmd.BuyerID,
		PropertyID: p.ID(),
		CreatedAt:  biztime.NowUTC(),
	})
	if err != nil {
		uc.logger.Errorw("failed to save property", "buyer_id", cmd.BuyerID, "property_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to save property: %w", err)
	}

	pd := propertydto.ToPropertyDTO(p)
	return &dto.SavedPropertyDTO{ID: saved.ID, PropertyID: p.ID(), SavedAt: saved.CreatedAt, Property: &pd}, nil
}

type UnsavePropertyUseCase struct {
	savedRepo buyer.SavedPropertyRepository
	logger    logger.Interface
}

func NewUnsavePropertyUseCase(savedRepo buyer.SavedPropertyRepository, logger logger.Interface) *UnsavePropertyUseCase {
	return &UnsavePropertyUseCase{savedRepo: savedRepo, logger: logger}
}

func (uc *UnsavePropertyUseCase) Execute(ctx context.Context, cmd SavePropertyCommand) error {
	removed, err := uc.savedRepo.Delete(ctx, cmd.BuyerID, cmd.PropertyID)
	if err != nil {
		return fmt.Errorf("failed to remove saved property: %w", err)
	}
	if !removed {
		return common.TranslateError(buyer.ErrSavedNotFound)
	}
	return nil
}

type ListSavedUseCase struct {
	savedRepo    buyer.SavedPropertyRepository
	propertyRepo property.Repository
	logger       logger.Interface
}

func NewListSavedUseCase(savedRepo buyer.SavedPropertyRepository, propertyRepo property.Repository, logger logger.Interface) *ListSavedUseCase {
	return &ListSavedUseCase{savedRepo: savedRepo, propertyRepo: propertyRepo, logger: logger}
}

// Execute lists bookmarks newest first with the current state of each property.
func (uc *ListSavedUseCase) Execute(ctx context.Context, buyerID uint) ([]dto.SavedPropertyDTO, error) {
	saved, err := uc.savedRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved properties: %w", err)
	}

	ids := make([]uint, 0, len(saved))
	for _, s := range saved {
		ids = append(ids, s.PropertyID)
	}
	props, err := propertiesByID(ctx, uc.propertyRepo, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SavedPropertyDTO, 0, len(saved))
	for _, s := range saved {
		out = append(out, dto.SavedPropertyDTO{
			ID:         s.ID,
			PropertyID: s.PropertyID,
			SavedAt:    s.CreatedAt,
			Property:   props[s.PropertyID],
		})
	}
	return out, nil
}

func propertiesByID(ctx context.Context, repo property.Repository, ids []uint) (map[uint]*propertydto.PropertyDTO, error) {
	out := make(map[uint]*propertydto.PropertyDTO, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	props, _, err := repo.List(ctx, property.Filter{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}
	for _, p := range props {
		pd := propertydto.ToPropertyDTO(p)
		out[p.ID()] = &pd
	}
	return out, nil
}
