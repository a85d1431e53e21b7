package helpers

import (
	"context"
	"fmt"
	"time"

	"github.com/estatery/estatery/internal/application/user/dto"
	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/infrastructure/auth"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/logger"
)

type TokenIssuer interface {
	Generate(userID uint, email string, roles authorization.RoleSet) (*auth.IssuedToken, error)
}

// AuthHelper grants roles lazily and issues access tokens. Every sign-in path
// goes through it so role and profile provisioning stay identical.
type AuthHelper struct {
	userRepo  user.Repository
	agentRepo agent.Repository
	buyerRepo buyer.ProfileRepository
	tokens    TokenIssuer
	trial     time.Duration
	logger    logger.Interface
}

func NewAuthHelper(
	userRepo user.Repository,
	agentRepo agent.Repository,
	buyerRepo buyer.ProfileRepository,
	tokens TokenIssuer,
	trial time.Duration,
	logger logger.Interface,
) *AuthHelper {
	return &AuthHelper{
		userRepo:  userRepo,
		agentRepo: agentRepo,
		buyerRepo: buyerRepo,
		tokens:    tokens,
		trial:     trial,
		logger:    logger,
	}
}

// ParseTargetRole returns fallback for an empty value.
func ParseTargetRole(raw string, fallback authorization.Role) (authorization.Role, error) {
	if raw == "" {
		return fallback, nil
	}
	role, err := authorization.ParseRole(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", user.ErrInvalidUser, err)
	}
	return role, nil
}

// EnsureRole attaches role to a stored user when missing and provisions the
// matching profile. ADMIN is never attached here.
func (h *AuthHelper) EnsureRole(ctx context.Context, u *user.User, role authorization.Role, now time.Time) error {
	if role == "" {
		return nil
	}
	if !u.HasRole(role) {
		if !role.SelfAssignable() {
			return user.ErrRoleNotAssignable
		}
		u.AttachRole(role, now)
		if err := h.userRepo.Update(ctx, u); err != nil {
			return fmt.Errorf("failed to attach role: %w", err)
		}
		h.logger.Infow("role attached", "user_id", u.ID(), "role", role)
	}
	return h.ProvisionProfile(ctx, u.ID(), role, now)
}

// ProvisionProfile creates the agent or buyer profile for role if absent.
// An agent's trial starts with its profile.
func (h *AuthHelper) ProvisionProfile(ctx context.Context, userID uint, role authorization.Role, now time.Time) error {
	switch role {
	case authorization.RoleAgent:
		p, err := agent.NewProfile(userID, h.trial, now)
		if err != nil {
			return err
		}
		if _, err := h.agentRepo.Provision(ctx, p); err != nil {
			return err
		}
	case authorization.RoleBuyer:
		p, err := buyer.NewProfile(userID, now)
		if err != nil {
			return err
		}
		if _, err := h.buyerRepo.Provision(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// IssueToken signs an access token carrying the user's current roles.
func (h *AuthHelper) IssueToken(u *user.User) (*dto.AuthResultDTO, error) {
	token, err := h.tokens.Generate(u.ID(), u.Email().String(), u.Roles())
	if err != nil {
		h.logger.Errorw("failed to issue token", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &dto.AuthResultDTO{
		Token:     token.Token,
		ExpiresIn: token.ExpiresIn,
		User:      dto.ToUserDTO(u),
	}, nil
}
