package usecases

import (
	"context"
	"fmt"

	"github.com/estatery/estatery/internal/application/buyer/dto"
	commondto "github.com/estatery/estatery/internal/application/common/dto"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type ListBuyersUseCase struct {
	buyerRepo buyer.ProfileRepository
	userRepo  user.Repository
	logger    logger.Interface
}

func NewListBuyersUseCase(buyerRepo buyer.ProfileRepository, userRepo user.Repository, logger logger.Interface) *ListBuyersUseCase {
	return &ListBuyersUseCase{buyerRepo: buyerRepo, userRepo: userRepo, logger: logger}
}

func (uc *ListBuyersUseCase) Execute(ctx context.Context, page, pageSize int) (*commondto.Page[dto.BuyerProfileDTO], error) {
	p := utils.ValidatePagination(page, pageSize)

	profiles, total, err := uc.buyerRepo.List(ctx, p.Page, p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list buyers", "error", err)
		return nil, fmt.Errorf("failed to list buyers: %w", err)
	}

	userIDs := make([]uint, 0, len(profiles))
	for _, b := range profiles {
		userIDs = append(userIDs, b.UserID())
	}
	users, err := uc.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load buyer users: %w", err)
	}

	items := make([]dto.BuyerProfileDTO, 0, len(profiles))
	for _, b := range profiles {
		items = append(items, dto.ToBuyerProfileDTO(b, users[b.UserID()]))
	}
	return &commondto.Page[dto.BuyerProfileDTO]{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}
