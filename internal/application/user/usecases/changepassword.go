package usecases

import (
	"context"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/domain/user"
	vo "github.com/estatery/estatery/internal/domain/user/valueobjects"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type ChangePasswordCommand struct {
	UserID uint
	// CurrentPassword may be empty for accounts that never had a password.
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewChangePasswordUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if err := vo.ValidatePassword(cmd.NewPassword); err != nil {
		return errors.NewValidationError(err.Error())
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return common.TranslateError(err)
	}
	if u.HasPassword() {
		if err := uc.hasher.Verify(cmd.CurrentPassword, *u.PasswordHash()); err != nil {
			return errors.NewValidationError("current password is incorrect")
		}
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		return err
	}
	u.SetPasswordHash(hash, biztime.NowUTC())
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to change password", "user_id", u.ID(), "error", err)
		return err
	}

	uc.logger.Infow("password changed", "user_id", u.ID())
	return nil
}
