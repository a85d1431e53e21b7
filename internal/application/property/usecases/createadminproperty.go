package usecases

import (
	"context"
	"fmt"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/infrastructure/storage"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/logger"
)

type CreateAdminPropertyCommand struct {
	// AgentID optionally assigns the listing to an agent profile.
	AgentID         *uint
	Details         DetailsInput
	Status          *string
	RejectionReason *string
	Images          []storage.Upload
}

type CreateAdminPropertyUseCase struct {
	propertyRepo property.Repository
	agentRepo    agent.Repository
	images       ImageStore
	logger       logger.Interface
}

func NewCreateAdminPropertyUseCase(
	propertyRepo property.Repository,
	agentRepo agent.Repository,
	images ImageStore,
	logger logger.Interface,
) *CreateAdminPropertyUseCase {
	return &CreateAdminPropertyUseCase{
		propertyRepo: propertyRepo,
		agentRepo:    agentRepo,
		images:       images,
		logger:       logger,
	}
}

func (uc *CreateAdminPropertyUseCase) Execute(ctx context.Context, cmd CreateAdminPropertyCommand) (*dto.PropertyDTO, error) {
	details, err := cmd.Details.toDetails()
	if err != nil {
		return nil, err
	}
	status, err := parseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	if cmd.AgentID != nil {
		if _, err := uc.agentRepo.GetByID(ctx, *cmd.AgentID); err != nil {
			return nil, common.TranslateError(err)
		}
	}

	now := biztime.NowUTC()
	p, err := property.NewAdminListing(cmd.AgentID, details, nil, nil, now)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	urls, err := storeImages(uc.images, cmd.Images)
	if err != nil {
		return nil, err
	}
	// Images go on before the status so a listing created as SOLD keeps them.
	if err := p.ReplaceImages(urls, now); err != nil {
		uc.images.Remove(urls)
		return nil, common.TranslateError(err)
	}
	if status != nil {
		if err := p.AssignStatus(*status, cmd.RejectionReason, now); err != nil {
			uc.images.Remove(urls)
			return nil, common.TranslateError(err)
		}
	}

	if err := uc.propertyRepo.Create(ctx, p); err != nil {
		uc.images.Remove(urls)
		uc.logger.Errorw("failed to create admin property", "error", err)
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	uc.logger.Infow("admin property created", "property_id", p.ID(), "status", p.Status())

	out := dto.ToPropertyDTO(p)
	return &out, nil
}
