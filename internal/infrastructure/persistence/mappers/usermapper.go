package mappers

import (
	"github.com/estatery/estatery/internal/domain/user"
	vo "github.com/estatery/estatery/internal/domain/user/valueobjects"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/authorization"
)

func UserToModel(u *user.User) *models.UserModel {
	auth := u.AuthData()
	m := &models.UserModel{
		ID:             u.ID(),
		Email:          u.Email().String(),
		Name:           u.Name(),
		Phone:          u.Phone(),
		AvatarURL:      u.AvatarURL(),
		PasswordHash:   auth.PasswordHash,
		GoogleID:       auth.GoogleID,
		ResetTokenHash: auth.ResetTokenHash,
		ResetExpiresAt: auth.ResetExpiresAt,
		CreatedAt:      u.CreatedAt(),
		UpdatedAt:      u.UpdatedAt(),
	}
	for _, r := range u.Roles().Slice() {
		m.Roles = append(m.Roles, models.UserRoleModel{UserID: u.ID(), Role: r.String()})
	}
	return m
}

// UserToDomain expects m.Roles to be preloaded.
func UserToDomain(m *models.UserModel) (*user.User, error) {
	roles := authorization.NewRoleSet()
	for _, r := range m.Roles {
		if role, err := authorization.ParseRole(r.Role); err == nil {
			roles.Add(role)
		}
	}
	return user.ReconstructUser(
		m.ID,
		vo.Email(m.Email),
		m.Name, m.Phone, m.AvatarURL,
		roles,
		user.UserAuthData{
			PasswordHash:   m.PasswordHash,
			GoogleID:       m.GoogleID,
			ResetTokenHash: m.ResetTokenHash,
			ResetExpiresAt: m.ResetExpiresAt,
		},
		m.CreatedAt, m.UpdatedAt,
	)
}
