package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/user/dto"
	"github.com/estatery/estatery/internal/application/user/helpers"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type LoginWithPasswordCommand struct {
	Email    string
	Password string
	// Role is attached on first use. Empty keeps the roles already held.
	Role string
}

type LoginWithPasswordUseCase struct {
	userRepo   user.Repository
	hasher     PasswordHasher
	authHelper *helpers.AuthHelper
	logger     logger.Interface
}

func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	authHelper *helpers.AuthHelper,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		userRepo:   userRepo,
		hasher:     hasher,
		authHelper: authHelper,
		logger:     logger,
	}
}

func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*dto.AuthResultDTO, error) {
	role, err := helpers.ParseTargetRole(cmd.Role, "")
	if err != nil {
		return nil, common.TranslateError(err)
	}

	u, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, errors.NewInvalidCredentialsError()
		}
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, err
	}
	if !u.HasPassword() {
		return nil, errors.NewPasswordNotSetError()
	}
	if err := uc.hasher.Verify(cmd.Password, *u.PasswordHash()); err != nil {
		uc.logger.Infow("failed login attempt", "user_id", u.ID())
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := uc.authHelper.EnsureRole(ctx, u, role, biztime.NowUTC()); err != nil {
		return nil, common.TranslateError(err)
	}

	uc.logger.Infow("user logged in", "user_id", u.ID(), "role", role)
	return uc.authHelper.IssueToken(u)
}
