package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/user/dto"
	"github.com/estatery/estatery/internal/application/user/helpers"
	"github.com/estatery/estatery/internal/domain/user"
	vo "github.com/estatery/estatery/internal/domain/user/valueobjects"
	"github.com/estatery/estatery/internal/infrastructure/auth"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

// GoogleLoginCommand carries either an authorization code or an access token
// obtained by the client.
type GoogleLoginCommand struct {
	Code        string
	AccessToken string
	Role        string
}

type GoogleLoginUseCase struct {
	userRepo   user.Repository
	google     GoogleAuthenticator
	authHelper *helpers.AuthHelper
	logger     logger.Interface
}

func NewGoogleLoginUseCase(
	userRepo user.Repository,
	google GoogleAuthenticator,
	authHelper *helpers.AuthHelper,
	logger logger.Interface,
) *GoogleLoginUseCase {
	return &GoogleLoginUseCase{
		userRepo:   userRepo,
		google:     google,
		authHelper: authHelper,
		logger:     logger,
	}
}

func (uc *GoogleLoginUseCase) Execute(ctx context.Context, cmd GoogleLoginCommand) (*dto.AuthResultDTO, error) {
	if cmd.Code == "" && cmd.AccessToken == "" {
		return nil, errors.NewValidationError("code or access_token is required")
	}
	role, err := helpers.ParseTargetRole(cmd.Role, "")
	if err != nil {
		return nil, common.TranslateError(err)
	}

	info, err := uc.google.Authenticate(ctx, cmd.Code, cmd.AccessToken)
	if err != nil {
		if stderrors.Is(err, auth.ErrGoogleNotConfigured) {
			return nil, errors.NewBadRequestError("google sign-in is not available")
		}
		uc.logger.Warnw("google authentication failed", "error", err)
		return nil, errors.NewOAuthError("could not verify google account")
	}
	if !info.EmailVerified {
		return nil, errors.NewOAuthError("google email is not verified")
	}

	now := biztime.NowUTC()
	u, created, err := uc.findOrCreate(ctx, info, role)
	if err != nil {
		return nil, err
	}
	if !created {
		if err := uc.authHelper.EnsureRole(ctx, u, role, now); err != nil {
			return nil, common.TranslateError(err)
		}
	}

	uc.logger.Infow("user signed in with google", "user_id", u.ID(), "created", created)
	return uc.authHelper.IssueToken(u)
}

// findOrCreate matches by google id, then links an existing account with the
// same email, and finally creates a new account.
func (uc *GoogleLoginUseCase) findOrCreate(ctx context.Context, info *auth.OAuthUserInfo, role authorization.Role) (*user.User, bool, error) {
	now := biztime.NowUTC()

	u, err := uc.userRepo.GetByGoogleID(ctx, info.ProviderID)
	if err == nil {
		return u, false, nil
	}
	if !stderrors.Is(err, user.ErrUserNotFound) {
		return nil, false, err
	}

	u, err = uc.userRepo.GetByEmail(ctx, strings.ToLower(info.Email))
	switch {
	case err == nil:
		u.LinkGoogle(info.ProviderID, info.Picture, now)
		if err := uc.userRepo.Update(ctx, u); err != nil {
			return nil, false, common.TranslateError(err)
		}
		return u, false, nil
	case !stderrors.Is(err, user.ErrUserNotFound):
		return nil, false, err
	}

	if role == "" {
		role = authorization.RoleBuyer
	}
	if !role.SelfAssignable() {
		return nil, false, common.TranslateError(user.ErrRoleNotAssignable)
	}

	email, err := vo.NewEmail(info.Email)
	if err != nil {
		return nil, false, errors.NewOAuthError(err.Error())
	}
	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = strings.SplitN(email.String(), "@", 2)[0]
	}
	u, err = user.NewUser(email, name, now)
	if err != nil {
		return nil, false, common.TranslateError(err)
	}
	u.LinkGoogle(info.ProviderID, info.Picture, now)
	u.AttachRole(role, now)
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, false, common.TranslateError(err)
	}
	if err := uc.authHelper.ProvisionProfile(ctx, u.ID(), role, now); err != nil {
		return nil, false, err
	}
	return u, true, nil
}
