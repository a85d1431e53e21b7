package user

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/estatery/estatery/internal/domain/user/valueobjects"
	"github.com/estatery/estatery/internal/shared/authorization"
)

// User is an account holding one or more roles. Roles only grow.
type User struct {
	id             uint
	email          vo.Email
	name           string
	phone          string
	avatarURL      string
	passwordHash   *string
	googleID       *string
	roles          authorization.RoleSet
	resetTokenHash *string
	resetExpiresAt *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewUser(email vo.Email, name string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidUser)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	return &User{
		email:     email,
		name:      name,
		roles:     authorization.NewRoleSet(),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// UserAuthData carries the credential columns when rebuilding a user.
type UserAuthData struct {
	PasswordHash   *string
	GoogleID       *string
	ResetTokenHash *string
	ResetExpiresAt *time.Time
}

func ReconstructUser(
	id uint,
	email vo.Email,
	name, phone, avatarURL string,
	roles authorization.RoleSet,
	auth UserAuthData,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if roles == nil {
		roles = authorization.NewRoleSet()
	}
	return &User{
		id:             id,
		email:          email,
		name:           name,
		phone:          phone,
		avatarURL:      avatarURL,
		passwordHash:   auth.PasswordHash,
		googleID:       auth.GoogleID,
		roles:          roles,
		resetTokenHash: auth.ResetTokenHash,
		resetExpiresAt: auth.ResetExpiresAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

// AttachRole adds role and reports whether it was newly added.
func (u *User) AttachRole(role authorization.Role, now time.Time) bool {
	if !u.roles.Add(role) {
		return false
	}
	u.updatedAt = now
	return true
}

func (u *User) HasRole(role authorization.Role) bool {
	return u.roles.Has(role)
}

func (u *User) SetPasswordHash(hash string, now time.Time) {
	u.passwordHash = &hash
	u.updatedAt = now
}

func (u *User) HasPassword() bool {
	return u.passwordHash != nil && *u.passwordHash != ""
}

// LinkGoogle records the Google subject id; the avatar is only filled when empty.
func (u *User) LinkGoogle(googleID, avatarURL string, now time.Time) {
	u.googleID = &googleID
	if u.avatarURL == "" {
		u.avatarURL = avatarURL
	}
	u.updatedAt = now
}

func (u *User) UpdateProfile(name, phone *string, now time.Time) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return fmt.Errorf("%w: name cannot be empty", ErrInvalidUser)
		}
		u.name = n
	}
	if phone != nil {
		u.phone = strings.TrimSpace(*phone)
	}
	u.updatedAt = now
	return nil
}

// IssueResetToken stores the digest of a password reset token.
func (u *User) IssueResetToken(hash string, ttl time.Duration, now time.Time) {
	expires := now.Add(ttl)
	u.resetTokenHash = &hash
	u.resetExpiresAt = &expires
	u.updatedAt = now
}

// ResetPassword consumes a valid reset token and stores the new hash.
func (u *User) ResetPassword(tokenHash, newPasswordHash string, now time.Time) error {
	if u.resetTokenHash == nil || *u.resetTokenHash != tokenHash ||
		u.resetExpiresAt == nil || !now.Before(*u.resetExpiresAt) {
		return ErrResetTokenInvalid
	}
	u.passwordHash = &newPasswordHash
	u.resetTokenHash = nil
	u.resetExpiresAt = nil
	u.updatedAt = now
	return nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Email() vo.Email {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Phone() string {
	return u.phone
}

func (u *User) AvatarURL() string {
	return u.avatarURL
}

func (u *User) PasswordHash() *string {
	return u.passwordHash
}

func (u *User) GoogleID() *string {
	return u.googleID
}

// Roles returns a copy of the role set.
func (u *User) Roles() authorization.RoleSet {
	return authorization.NewRoleSet(u.roles.Slice()...)
}

func (u *User) AuthData() UserAuthData {
	return UserAuthData{
		PasswordHash:   u.passwordHash,
		GoogleID:       u.googleID,
		ResetTokenHash: u.resetTokenHash,
		ResetExpiresAt: u.resetExpiresAt,
	}
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id uint) {
	u.id = id
}
