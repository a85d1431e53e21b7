package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatery/estatery/internal/application/user/dto"
	"github.com/estatery/estatery/internal/application/user/usecases"
	"github.com/estatery/estatery/internal/interfaces/http/handlers/testutil"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockRegisterUC struct {
	cmd    usecases.RegisterWithPasswordCommand
	result *dto.AuthResultDTO
	err    error
}

func (m *mockRegisterUC) Execute(ctx context.Context, cmd usecases.RegisterWithPasswordCommand) (*dto.AuthResultDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockLoginUC struct {
	cmd    usecases.LoginWithPasswordCommand
	result *dto.AuthResultDTO
	err    error
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd usecases.LoginWithPasswordCommand) (*dto.AuthResultDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGoogleLoginUC struct {
	called bool
	result *dto.AuthResultDTO
	err    error
}

func (m *mockGoogleLoginUC) Execute(ctx context.Context, cmd usecases.GoogleLoginCommand) (*dto.AuthResultDTO, error) {
	m.called = true
	return m.result, m.err
}

type mockRequestResetUC struct {
	err error
}

func (m *mockRequestResetUC) Execute(ctx context.Context, cmd usecases.RequestPasswordResetCommand) error {
	return m.err
}

type mockResetPasswordUC struct {
	cmd usecases.ResetPasswordCommand
	err error
}

func (m *mockResetPasswordUC) Execute(ctx context.Context, cmd usecases.ResetPasswordCommand) error {
	m.cmd = cmd
	return m.err
}

type mockChangePasswordUC struct {
	cmd usecases.ChangePasswordCommand
	err error
}

func (m *mockChangePasswordUC) Execute(ctx context.Context, cmd usecases.ChangePasswordCommand) error {
	m.cmd = cmd
	return m.err
}

type mockCurrentUserUC struct {
	result *dto.MeDTO
	err    error
}

func (m *mockCurrentUserUC) Execute(ctx context.Context, userID uint) (*dto.MeDTO, error) {
	return m.result, m.err
}

// =====================================================================
// Test helpers
// =====================================================================

type authMocks struct {
	register *mockRegisterUC
	login    *mockLoginUC
	google   *mockGoogleLoginUC
	reqReset *mockRequestResetUC
	reset    *mockResetPasswordUC
	change   *mockChangePasswordUC
	me       *mockCurrentUserUC
}

func newTestAuthHandler() (*AuthHandler, *authMocks) {
	m := &authMocks{
		register: &mockRegisterUC{},
		login:    &mockLoginUC{},
		google:   &mockGoogleLoginUC{},
		reqReset: &mockRequestResetUC{},
		reset:    &mockResetPasswordUC{},
		change:   &mockChangePasswordUC{},
		me:       &mockCurrentUserUC{},
	}
	h := NewAuthHandler(m.register, m.login, m.google, m.reqReset, m.reset, m.change, m.me, logger.NewNop())
	return h, m
}

func testAuthResult(roles ...string) *dto.AuthResultDTO {
	return &dto.AuthResultDTO{
		Token:     "jwt-token",
		ExpiresIn: 3600,
		User: dto.UserDTO{
			ID:    7,
			Email: "ada@example.com",
			Name:  "Ada Obi",
			Roles: roles,
		},
	}
}

// =====================================================================
// Signup
// =====================================================================

func TestAuthHandler_Signup_Success(t *testing.T) {
	h, m := newTestAuthHandler()
	m.register.result = testAuthResult("AGENT")

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/signup", SignupRequest{
		Email:    "ada@example.com",
		Name:     "Ada Obi",
		Password: "password123",
		Role:     "AGENT",
	})

	h.Signup(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var data dto.AuthResultDTO
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "jwt-token", data.Token)
	assert.Equal(t, []string{"AGENT"}, data.User.Roles)
	assert.Equal(t, "AGENT", m.register.cmd.Role)
}

func TestAuthHandler_Signup_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"missing email", map[string]any{"name": "Ada Obi", "password": "password123"}},
		{"invalid email", map[string]any{"email": "nope", "name": "Ada Obi", "password": "password123"}},
		{"short password", map[string]any{"email": "ada@example.com", "name": "Ada Obi", "password": "short"}},
		{"admin role", map[string]any{"email": "ada@example.com", "name": "Ada Obi", "password": "password123", "role": "ADMIN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestAuthHandler()
			c, w := testutil.NewTestContext(http.MethodPost, "/auth/signup", tt.body)

			h.Signup(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
		})
	}
}

func TestAuthHandler_Signup_Conflict(t *testing.T) {
	h, m := newTestAuthHandler()
	m.register.err = errors.NewConflictError("email already registered")

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/signup", SignupRequest{
		Email:    "ada@example.com",
		Name:     "Ada Obi",
		Password: "password123",
	})

	h.Signup(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// =====================================================================
// Login
// =====================================================================

func TestAuthHandler_Login_PassesRole(t *testing.T) {
	h, m := newTestAuthHandler()
	m.login.result = testAuthResult("BUYER", "AGENT")

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", LoginRequest{
		Email:    "ada@example.com",
		Password: "password123",
		Role:     "AGENT",
	})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AGENT", m.login.cmd.Role)
	assert.Equal(t, "ada@example.com", m.login.cmd.Email)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h, m := newTestAuthHandler()
	m.login.err = errors.NewInvalidCredentialsError()

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_AdminRoleForbidden(t *testing.T) {
	h, m := newTestAuthHandler()
	m.login.err = errors.NewForbiddenError("role ADMIN cannot be self-assigned")

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", LoginRequest{
		Email:    "ada@example.com",
		Password: "password123",
		Role:     "ADMIN",
	})

	h.Login(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// Google
// =====================================================================

func TestAuthHandler_GoogleLogin_RequiresCredential(t *testing.T) {
	h, m := newTestAuthHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/google", GoogleLoginRequest{Role: "BUYER"})

	h.GoogleLogin(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, m.google.called)
}

func TestAuthHandler_GoogleLogin_Success(t *testing.T) {
	h, m := newTestAuthHandler()
	m.google.result = testAuthResult("BUYER")

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/google", GoogleLoginRequest{Code: "auth-code"})

	h.GoogleLogin(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, m.google.called)
}

// =====================================================================
// Password flows
// =====================================================================

func TestAuthHandler_ForgotPassword_AlwaysAccepted(t *testing.T) {
	h, _ := newTestAuthHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/forgot-password", ForgotPasswordRequest{Email: "nobody@example.com"})

	h.ForgotPassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_ResetPassword_UsesPathToken(t *testing.T) {
	h, m := newTestAuthHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/reset-password/abc123", ResetPasswordRequest{Password: "new-password"})
	testutil.SetURLParam(c, "token", "abc123")

	h.ResetPassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", m.reset.cmd.Token)
	assert.Equal(t, "new-password", m.reset.cmd.NewPassword)
}

func TestAuthHandler_ResetPassword_InvalidToken(t *testing.T) {
	h, m := newTestAuthHandler()
	m.reset.err = errors.NewValidationError("reset token is invalid or expired")

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/reset-password/expired", ResetPasswordRequest{Password: "new-password"})
	testutil.SetURLParam(c, "token", "expired")

	h.ResetPassword(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		h, _ := newTestAuthHandler()
		c, w := testutil.NewTestContext(http.MethodPost, "/auth/change-password", ChangePasswordRequest{NewPassword: "new-password"})

		h.ChangePassword(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		h, m := newTestAuthHandler()
		c, w := testutil.NewTestContext(http.MethodPost, "/auth/change-password", ChangePasswordRequest{
			CurrentPassword: "old-password",
			NewPassword:     "new-password",
		})
		testutil.SetAuthContext(c, 7, authorization.RoleBuyer)

		h.ChangePassword(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(7), m.change.cmd.UserID)
		assert.Equal(t, "old-password", m.change.cmd.CurrentPassword)
	})
}

// =====================================================================
// Me
// =====================================================================

func TestAuthHandler_Me(t *testing.T) {
	h, m := newTestAuthHandler()
	agentID := uint(3)
	m.me.result = &dto.MeDTO{UserDTO: testAuthResult("AGENT").User, AgentProfileID: &agentID}

	c, w := testutil.NewTestContext(http.MethodGet, "/auth/me", nil)
	testutil.SetAuthContext(c, 7, authorization.RoleAgent)

	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data dto.MeDTO
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotNil(t, data.AgentProfileID)
	assert.Equal(t, uint(3), *data.AgentProfileID)
}
