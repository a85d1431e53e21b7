package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatery/estatery/internal/shared/authorization"
)

var now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser("ada@example.com", "Ada", now)
	require.NoError(t, err)
	return u
}

func TestNewUser_RequiresName(t *testing.T) {
	_, err := NewUser("ada@example.com", "  ", now)
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestAttachRole_IsAdditive(t *testing.T) {
	u := newUser(t)
	assert.True(t, u.AttachRole(authorization.RoleBuyer, now))
	assert.True(t, u.AttachRole(authorization.RoleAgent, now))
	assert.False(t, u.AttachRole(authorization.RoleBuyer, now))

	assert.True(t, u.HasRole(authorization.RoleBuyer))
	assert.True(t, u.HasRole(authorization.RoleAgent))
	assert.Equal(t, []string{"AGENT", "BUYER"}, u.Roles().Strings())
}

func TestRoles_ReturnsCopy(t *testing.T) {
	u := newUser(t)
	u.AttachRole(authorization.RoleBuyer, now)
	u.Roles().Add(authorization.RoleAdmin)
	assert.False(t, u.HasRole(authorization.RoleAdmin))
}

func TestResetPassword(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		u := newUser(t)
		u.IssueResetToken("digest", 30*time.Minute, now)
		require.NoError(t, u.ResetPassword("digest", "new-hash", now.Add(10*time.Minute)))
		assert.Equal(t, "new-hash", *u.PasswordHash())
		assert.Nil(t, u.AuthData().ResetTokenHash)

		assert.ErrorIs(t, u.ResetPassword("digest", "again", now), ErrResetTokenInvalid, "token is single use")
	})

	t.Run("expired token", func(t *testing.T) {
		u := newUser(t)
		u.IssueResetToken("digest", 30*time.Minute, now)
		assert.ErrorIs(t, u.ResetPassword("digest", "x", now.Add(30*time.Minute)), ErrResetTokenInvalid)
	})

	t.Run("wrong token", func(t *testing.T) {
		u := newUser(t)
		u.IssueResetToken("digest", 30*time.Minute, now)
		assert.ErrorIs(t, u.ResetPassword("other", "x", now), ErrResetTokenInvalid)
	})
}

func TestLinkGoogle_KeepsExistingAvatar(t *testing.T) {
	u := newUser(t)
	u.LinkGoogle("g-1", "https://a/1.png", now)
	u.LinkGoogle("g-1", "https://a/2.png", now)
	assert.Equal(t, "https://a/1.png", u.AvatarURL())
	assert.Equal(t, "g-1", *u.GoogleID())
}
