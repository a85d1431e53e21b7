package usecases

import (
	"context"
	"fmt"

	commondto "github.com/estatery/estatery/internal/application/common/dto"
	"github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/domain/property"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

// ListPropertiesQuery serves the agent and admin consoles. Results are in id order.
type ListPropertiesQuery struct {
	AgentID  *uint
	Status   *string
	Location string
	Page     int
	PageSize int
}

type ListPropertiesUseCase struct {
	propertyRepo property.Repository
	logger       logger.Interface
}

func NewListPropertiesUseCase(propertyRepo property.Repository, logger logger.Interface) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{propertyRepo: propertyRepo, logger: logger}
}

func (uc *ListPropertiesUseCase) Execute(ctx context.Context, q ListPropertiesQuery) (*commondto.Page[dto.PropertyDTO], error) {
	status, err := parseStatus(q.Status)
	if err != nil {
		return nil, err
	}
	pg := utils.ValidatePagination(q.Page, q.PageSize)

	filter := property.Filter{
		AgentID:  q.AgentID,
		Location: q.Location,
		Page:     pg.Page,
		PageSize: pg.PageSize,
	}
	if status != nil {
		filter.Statuses = []vo.Status{*status}
	}

	props, total, err := uc.propertyRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list properties", "error", err)
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	return &commondto.Page[dto.PropertyDTO]{
		Items:    dto.ToPropertyDTOs(props),
		Total:    total,
		Page:     pg.Page,
		PageSize: pg.PageSize,
	}, nil
}
