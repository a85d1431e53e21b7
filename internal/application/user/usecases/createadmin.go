package usecases

import (
	"context"
	stderrors "errors"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/user/dto"
	"github.com/estatery/estatery/internal/domain/user"
	vo "github.com/estatery/estatery/internal/domain/user/valueobjects"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type CreateAdminCommand struct {
	Email string
	Name  string
	// Password may be empty when promoting an account that already has one.
	Password string
}

// CreateAdminUseCase is the only path that grants ADMIN. An existing account
// keeps its other roles and gains ADMIN.
type CreateAdminUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewCreateAdminUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *CreateAdminUseCase {
	return &CreateAdminUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

func (uc *CreateAdminUseCase) Execute(ctx context.Context, cmd CreateAdminCommand) (dto.UserDTO, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return dto.UserDTO{}, errors.NewValidationError(err.Error())
	}
	if cmd.Password != "" {
		if err := vo.ValidatePassword(cmd.Password); err != nil {
			return dto.UserDTO{}, errors.NewValidationError(err.Error())
		}
	}

	now := biztime.NowUTC()
	existing, err := uc.userRepo.GetByEmail(ctx, email.String())
	switch {
	case err == nil:
		return uc.promote(ctx, existing, cmd.Password)
	case !stderrors.Is(err, user.ErrUserNotFound):
		return dto.UserDTO{}, common.TranslateError(err)
	}

	if cmd.Password == "" {
		return dto.UserDTO{}, errors.NewValidationError("password is required for a new admin")
	}
	u, err := user.NewUser(email, cmd.Name, now)
	if err != nil {
		return dto.UserDTO{}, common.TranslateError(err)
	}
	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return dto.UserDTO{}, err
	}
	u.SetPasswordHash(hash, now)
	u.AttachRole(authorization.RoleAdmin, now)

	if err := uc.userRepo.Create(ctx, u); err != nil {
		return dto.UserDTO{}, common.TranslateError(err)
	}
	uc.logger.Infow("admin created", "user_id", u.ID(), "email", email)
	return dto.ToUserDTO(u), nil
}

func (uc *CreateAdminUseCase) promote(ctx context.Context, u *user.User, password string) (dto.UserDTO, error) {
	now := biztime.NowUTC()
	changed := u.AttachRole(authorization.RoleAdmin, now)
	if password != "" && !u.HasPassword() {
		hash, err := uc.hasher.Hash(password)
		if err != nil {
			return dto.UserDTO{}, err
		}
		u.SetPasswordHash(hash, now)
		changed = true
	}
	if !changed {
		return dto.ToUserDTO(u), nil
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return dto.UserDTO{}, common.TranslateError(err)
	}
	uc.logger.Infow("user promoted to admin", "user_id", u.ID())
	return dto.ToUserDTO(u), nil
}
