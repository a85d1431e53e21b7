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

type CreateAgentPropertyCommand struct {
	AgentID uint
	Details DetailsInput
	// Draft keeps the listing out of the review queue.
	Draft  bool
	Images []storage.Upload
}

type CreateAgentPropertyUseCase struct {
	propertyRepo property.Repository
	images       ImageStore
	logger       logger.Interface
}

func NewCreateAgentPropertyUseCase(
	propertyRepo property.Repository,
	images ImageStore,
	logger logger.Interface,
) *CreateAgentPropertyUseCase {
	return &CreateAgentPropertyUseCase{
		propertyRepo: propertyRepo,
		images:       images,
		logger:       logger,
	}
}

func (uc *CreateAgentPropertyUseCase) Execute(ctx context.Context, cmd CreateAgentPropertyCommand) (*dto.PropertyDTO, error) {
	details, err := cmd.Details.toDetails()
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	p, err := property.NewAgentListing(cmd.AgentID, details, cmd.Draft, now)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	urls, err := storeImages(uc.images, cmd.Images)
	if err != nil {
		return nil, err
	}
	if err := p.ReplaceImages(urls, now); err != nil {
		uc.images.Remove(urls)
		return nil, common.TranslateError(err)
	}

	if err := uc.propertyRepo.Create(ctx, p); err != nil {
		uc.images.Remove(urls)
		uc.logger.Errorw("failed to create property", "agent_id", cmd.AgentID, "error", err)
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	uc.logger.Infow("property created", "property_id", p.ID(), "agent_id", cmd.AgentID, "status", p.Status())

	out := dto.ToPropertyDTO(p)
	return &out, nil
}
