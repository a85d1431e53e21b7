package usecases

import (
	"context"
	"fmt"
	"strings"

	commondto "github.com/estatery/estatery/internal/application/common/dto"
	"github.com/estatery/estatery/internal/application/property/dto"
	"github.com/estatery/estatery/internal/domain/property"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type ListPublicPropertiesQuery struct {
	Location        string
	Category        string
	TransactionType string
	Furnishing      string
	MinPrice        *int64
	MaxPrice        *int64
	MinBedrooms     *int
	Page            int
	PageSize        int
}

type ListPublicPropertiesUseCase struct {
	propertyRepo     property.Repository
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListPublicPropertiesUseCase(
	propertyRepo property.Repository,
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ListPublicPropertiesUseCase {
	return &ListPublicPropertiesUseCase{
		propertyRepo:     propertyRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute ranks the whole filtered APPROVED set by the owning agent's plan
// priority at request time, newest first within a score, then paginates.
func (uc *ListPublicPropertiesUseCase) Execute(ctx context.Context, q ListPublicPropertiesQuery) (*commondto.Page[dto.PublicPropertyDTO], error) {
	filter, err := q.toFilter()
	if err != nil {
		return nil, err
	}
	pg := utils.ValidatePagination(q.Page, q.PageSize)

	props, _, err := uc.propertyRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list public properties", "error", err)
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	subs, err := uc.subscriptionRepo.GetByAgentIDs(ctx, agentIDs(props))
	if err != nil {
		uc.logger.Errorw("failed to load subscriptions for ranking", "error", err)
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	now := biztime.NowUTC()
	scores := make(map[uint]int, len(props))
	score := func(p *property.Property) int {
		if p.AgentID() == nil {
			return property.PriorityDefault
		}
		return subscription.PriorityAt(subs[*p.AgentID()], now)
	}
	ranked := property.Rank(props, func(p *property.Property) int {
		s := score(p)
		scores[p.ID()] = s
		return s
	})

	start, end := utils.ApplyPagination(len(ranked), pg.Page, pg.PageSize)
	items := make([]dto.PublicPropertyDTO, 0, end-start)
	for _, p := range ranked[start:end] {
		items = append(items, dto.PublicPropertyDTO{PropertyDTO: dto.ToPropertyDTO(p), Priority: scores[p.ID()]})
	}

	return &commondto.Page[dto.PublicPropertyDTO]{
		Items:    items,
		Total:    int64(len(ranked)),
		Page:     pg.Page,
		PageSize: pg.PageSize,
	}, nil
}

func (q ListPublicPropertiesQuery) toFilter() (property.Filter, error) {
	f := property.Filter{
		Statuses:               []vo.Status{vo.StatusApproved},
		Location:               strings.TrimSpace(q.Location),
		Category:               strings.ToUpper(strings.TrimSpace(q.Category)),
		MinPrice:               q.MinPrice,
		MaxPrice:               q.MaxPrice,
		MinBedrooms:            q.MinBedrooms,
		ExcludeSuspendedAgents: true,
	}
	if q.TransactionType != "" {
		t, err := vo.ParseTransactionType(q.TransactionType)
		if err != nil {
			return f, errors.NewValidationError(err.Error())
		}
		f.TransactionType = t
	}
	if q.Furnishing != "" {
		fu, err := vo.ParseFurnishing(q.Furnishing)
		if err != nil {
			return f, errors.NewValidationError(err.Error())
		}
		f.Furnishing = fu
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, errors.NewValidationError("min_price must not exceed max_price")
	}
	return f, nil
}

func agentIDs(props []*property.Property) []uint {
	seen := make(map[uint]struct{}, len(props))
	ids := make([]uint, 0, len(props))
	for _, p := range props {
		if p.AgentID() == nil {
			continue
		}
		if _, ok := seen[*p.AgentID()]; ok {
			continue
		}
		seen[*p.AgentID()] = struct{}{}
		ids = append(ids, *p.AgentID())
	}
	return ids
}
