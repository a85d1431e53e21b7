package usecases

import (
	"context"
	stderrors "errors"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type GetPublicPropertyUseCase struct {
	propertyRepo property.Repository
	agentRepo    agent.Repository
	userRepo     user.Repository
	renderer     MarkdownRenderer
	logger       logger.Interface
}

func NewGetPublicPropertyUseCase(
	propertyRepo property.Repository,
	agentRepo agent.Repository,
	userRepo user.Repository,
	renderer MarkdownRenderer,
	logger logger.Interface,
) *GetPublicPropertyUseCase {
	return &GetPublicPropertyUseCase{
		propertyRepo: propertyRepo,
		agentRepo:    agentRepo,
		userRepo:     userRepo,
		renderer:     renderer,
		logger:       logger,
	}
}

// Execute hides anything that is not APPROVED, and listings of suspended agents.
func (uc *GetPublicPropertyUseCase) Execute(ctx context.Context, propertyID uint) (*dto.PropertyDetailDTO, error) {
	notFound := errors.NewNotFoundError("property not found")

	p, err := uc.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !p.IsPubliclyVisible() {
		return nil, notFound
	}

	out := &dto.PropertyDetailDTO{PropertyDTO: dto.ToPropertyDTO(p)}

	if p.AgentID() != nil {
		a, err := uc.agentRepo.GetByID(ctx, *p.AgentID())
		switch {
		case err == nil:
			if a.Suspended() {
				return nil, notFound
			}
			u, err := uc.userRepo.GetByID(ctx, a.UserID())
			if err != nil && !stderrors.Is(err, user.ErrUserNotFound) {
				return nil, err
			}
			out.Agent = dto.ToAgentContactDTO(a, u)
		case !stderrors.Is(err, agent.ErrAgentNotFound):
			return nil, err
		}
	}

	html, err := uc.renderer.Render(p.Details().Description)
	if err != nil {
		// Plain text is still served.
		uc.logger.Warnw("failed to render property description", "property_id", p.ID(), "error", err)
	}
	out.DescriptionHTML = html

	return out, nil
}
