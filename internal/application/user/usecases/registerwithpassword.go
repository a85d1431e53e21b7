package usecases

import (
	"context"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/user/dto"
	"github.com/estatery/estatery/internal/application/user/helpers"
	"github.com/estatery/estatery/internal/domain/user"
	vo "github.com/estatery/estatery/internal/domain/user/valueobjects"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type RegisterWithPasswordCommand struct {
	Email    string
	Password string
	Name     string
	Phone    string
	// Role defaults to BUYER.
	Role string
}

type RegisterWithPasswordUseCase struct {
	userRepo   user.Repository
	hasher     PasswordHasher
	authHelper *helpers.AuthHelper
	txManager  TransactionManager
	logger     logger.Interface
}

func NewRegisterWithPasswordUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	authHelper *helpers.AuthHelper,
	txManager TransactionManager,
	logger logger.Interface,
) *RegisterWithPasswordUseCase {
	return &RegisterWithPasswordUseCase{
		userRepo:   userRepo,
		hasher:     hasher,
		authHelper: authHelper,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *RegisterWithPasswordUseCase) Execute(ctx context.Context, cmd RegisterWithPasswordCommand) (*dto.AuthResultDTO, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := vo.ValidatePassword(cmd.Password); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	role, err := helpers.ParseTargetRole(cmd.Role, authorization.RoleBuyer)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !role.SelfAssignable() {
		return nil, common.TranslateError(user.ErrRoleNotAssignable)
	}

	now := biztime.NowUTC()
	u, err := user.NewUser(email, cmd.Name, now)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if cmd.Phone != "" {
		if err := u.UpdateProfile(nil, &cmd.Phone, now); err != nil {
			return nil, common.TranslateError(err)
		}
	}
	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}
	u.SetPasswordHash(hash, now)
	u.AttachRole(role, now)

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, u); err != nil {
			return err
		}
		return uc.authHelper.ProvisionProfile(ctx, u.ID(), role, now)
	})
	if err != nil {
		uc.logger.Warnw("failed to register user", "email", email, "error", err)
		return nil, common.TranslateError(err)
	}

	uc.logger.Infow("user registered", "user_id", u.ID(), "role", role)
	return uc.authHelper.IssueToken(u)
}
