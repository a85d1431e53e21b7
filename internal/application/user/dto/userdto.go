package dto

import (
	"time"

	"github.com/estatery/estatery/internal/domain/user"
)

type UserDTO struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	AvatarURL   string    `json:"avatar_url"`
	Roles       []string  `json:"roles"`
	HasPassword bool      `json:"has_password"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResultDTO is returned by signup, login and Google sign-in.
type AuthResultDTO struct {
	Token     string  `json:"token"`
	ExpiresIn int64   `json:"expires_in"`
	User      UserDTO `json:"user"`
}

// MeDTO is the current user with the ids of the profiles they hold.
type MeDTO struct {
	UserDTO
	AgentProfileID *uint      `json:"agent_profile_id,omitempty"`
	BuyerProfileID *uint      `json:"buyer_profile_id,omitempty"`
	TrialEndsAt    *time.Time `json:"trial_ends_at,omitempty"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID(),
		Email:       u.Email().String(),
		Name:        u.Name(),
		Phone:       u.Phone(),
		AvatarURL:   u.AvatarURL(),
		Roles:       u.Roles().Strings(),
		HasPassword: u.HasPassword(),
		CreatedAt:   u.CreatedAt(),
	}
}

func ToUserDTOs(users []*user.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}
