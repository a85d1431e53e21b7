package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/estatery/estatery/internal/application/buyer/dto"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

// ResolveBuyerUseCase returns the buyer profile of a BUYER token holder,
// provisioning it when the role was granted without one.
type ResolveBuyerUseCase struct {
	buyerRepo buyer.ProfileRepository
	logger    logger.Interface
}

func NewResolveBuyerUseCase(buyerRepo buyer.ProfileRepository, logger logger.Interface) *ResolveBuyerUseCase {
	return &ResolveBuyerUseCase{buyerRepo: buyerRepo, logger: logger}
}

func (uc *ResolveBuyerUseCase) Execute(ctx context.Context, userID uint) (*buyer.Profile, error) {
	p, err := uc.buyerRepo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !stderrors.Is(err, buyer.ErrBuyerNotFound) {
		return nil, err
	}

	fresh, err := buyer.NewProfile(userID, biztime.NowUTC())
	if err != nil {
		return nil, err
	}
	uc.logger.Infow("provisioning missing buyer profile", "user_id", userID)
	return uc.buyerRepo.Provision(ctx, fresh)
}

type GetProfileUseCase struct {
	userRepo user.Repository
}

func NewGetProfileUseCase(userRepo user.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, p *buyer.Profile) (*dto.BuyerProfileDTO, error) {
	return withUser(ctx, uc.userRepo, p)
}

type UpdateProfileCommand struct {
	Profile           *buyer.Profile
	Phone             *string
	PreferredLocation *string
	BudgetMin         *int64
	BudgetMax         *int64
}

type UpdateProfileUseCase struct {
	buyerRepo buyer.ProfileRepository
	userRepo  user.Repository
	logger    logger.Interface
}

func NewUpdateProfileUseCase(buyerRepo buyer.ProfileRepository, userRepo user.Repository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{buyerRepo: buyerRepo, userRepo: userRepo, logger: logger}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.BuyerProfileDTO, error) {
	p := cmd.Profile
	err := p.Apply(buyer.Patch{
		Phone:             cmd.Phone,
		PreferredLocation: cmd.PreferredLocation,
		BudgetMin:         cmd.BudgetMin,
		BudgetMax:         cmd.BudgetMax,
	}, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.buyerRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update buyer profile", "buyer_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to update buyer profile: %w", err)
	}
	return withUser(ctx, uc.userRepo, p)
}

func withUser(ctx context.Context, userRepo user.Repository, p *buyer.Profile) (*dto.BuyerProfileDTO, error) {
	u, err := userRepo.GetByID(ctx, p.UserID())
	if err != nil && !stderrors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}
	out := dto.ToBuyerProfileDTO(p, u)
	return &out, nil
}
