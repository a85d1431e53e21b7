package usecases

import (
	"context"
	stderrors "errors"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/domain/user"
	vo "github.com/estatery/estatery/internal/domain/user/valueobjects"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/id"
	"github.com/estatery/estatery/internal/shared/logger"
)

type ResetPasswordCommand struct {
	Token       string
	NewPassword string
}

type ResetPasswordUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewResetPasswordUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, cmd ResetPasswordCommand) error {
	if cmd.Token == "" {
		return common.TranslateError(user.ErrResetTokenInvalid)
	}
	if err := vo.ValidatePassword(cmd.NewPassword); err != nil {
		return errors.NewValidationError(err.Error())
	}

	tokenHash := id.HashToken(cmd.Token)
	u, err := uc.userRepo.GetByResetTokenHash(ctx, tokenHash)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return common.TranslateError(user.ErrResetTokenInvalid)
		}
		return err
	}

	newHash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		return err
	}
	if err := u.ResetPassword(tokenHash, newHash, biztime.NowUTC()); err != nil {
		return common.TranslateError(err)
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save new password", "user_id", u.ID(), "error", err)
		return err
	}

	uc.logger.Infow("password reset completed", "user_id", u.ID())
	return nil
}
