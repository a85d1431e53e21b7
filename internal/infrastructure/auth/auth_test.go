package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/config"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	issued, err := svc.Generate(42, "a@b.io", authorization.NewRoleSet(authorization.RoleAgent, authorization.RoleBuyer))
	require.NoError(t, err)
	assert.Equal(t, int64(900), issued.ExpiresIn)

	claims, err := svc.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.RoleSet().Has(authorization.RoleAgent))
	assert.False(t, claims.RoleSet().Has(authorization.RoleAdmin))
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issued, err := NewJWTService("one", 15).Generate(1, "a@b.io", authorization.NewRoleSet(authorization.RoleBuyer))
	require.NoError(t, err)

	_, err = NewJWTService("two", 15).Verify(issued.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, Roles: []string{"ADMIN"}})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("secret", 15).Verify(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(4)

	hash, err := h.Hash("s3cretpass")
	require.NoError(t, err)
	assert.NoError(t, h.Verify("s3cretpass", hash))
	assert.ErrorIs(t, h.Verify("wrong", hash), ErrPasswordMismatch)
	assert.ErrorIs(t, h.Verify("s3cretpass", "not-a-hash"), ErrPasswordMismatch)
}

func TestGoogleOAuthClient_GetUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"g-1","email":"ada@example.com","verified_email":true,"name":"Ada"}`))
	}))
	defer srv.Close()

	c := NewGoogleOAuthClient(config.GoogleOAuthConfig{})
	c.userInfoURL = srv.URL

	info, err := c.Authenticate(context.Background(), "", "good")
	require.NoError(t, err)
	assert.Equal(t, "g-1", info.ProviderID)
	assert.True(t, info.EmailVerified)

	_, err = c.Authenticate(context.Background(), "", "bad")
	assert.Error(t, err)

	_, err = c.Authenticate(context.Background(), "code", "")
	assert.ErrorIs(t, err, ErrGoogleNotConfigured)
}
