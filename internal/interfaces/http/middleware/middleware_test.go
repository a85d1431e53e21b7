package middleware

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/infrastructure/auth"
	"github.com/estatery/estatery/internal/infrastructure/ratelimit"
	"github.com/estatery/estatery/internal/interfaces/http/handlers/testutil"
	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/constants"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

func perform(t *testing.T, engine *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, testutil.APIResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	var resp testutil.APIResponse
	if w.Body.Len() > 0 {
		require.NoError(t, testutil.ParseResponse(w, &resp))
	}
	return w, resp
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// withRoles fakes RequireAuth for tests that start after it.
func withRoles(userID uint, roles ...authorization.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUserRoles, authorization.NewRoleSet(roles...))
		c.Next()
	}
}

func TestRequireAuth(t *testing.T) {
	jwt := auth.NewJWTService("test-secret", 60)
	m := NewAuthMiddleware(jwt, logger.NewNop())

	engine := gin.New()
	engine.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "roles": Roles(c).Strings()})
	})

	issued, err := jwt.Generate(7, "ada@example.com", authorization.NewRoleSet(authorization.RoleAgent))
	require.NoError(t, err)
	other, err := auth.NewJWTService("other-secret", 60).Generate(7, "ada@example.com", authorization.NewRoleSet(authorization.RoleAgent))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + issued.Token, http.StatusOK},
		{"lowercase scheme", "bearer " + issued.Token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"foreign signature", "Bearer " + other.Token, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(constants.HeaderAuthorization, tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"id":7,"roles":["AGENT"]}`, w.Body.String())
			}
		})
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	m := NewAuthMiddleware(auth.NewJWTService("test-secret", 60), logger.NewNop())
	engine := gin.New()
	engine.GET("/me", m.RequireAuth(), ok)

	past := time.Now().Add(-2 * time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		UserID: 7,
		Roles:  []string{"AGENT"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "estatery",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	w, resp := perform(t, engine, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "token_expired", resp.Error.Type)
}

type mockPolicy struct{ mock.Mock }

func (m *mockPolicy) AllowedRoles(resource, action string) (authorization.RoleSet, error) {
	args := m.Called(resource, action)
	roles, _ := args.Get(0).(authorization.RoleSet)
	return roles, args.Error(1)
}

func TestRequireAccess(t *testing.T) {
	policy := new(mockPolicy)
	policy.On("AllowedRoles", "agent", "write").Return(authorization.NewRoleSet(authorization.RoleAgent), nil)
	policy.On("AllowedRoles", "broken", "read").Return(nil, assert.AnError)
	m := NewPermissionMiddleware(policy, logger.NewNop())

	t.Run("intersecting roles pass", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/x", withRoles(1, authorization.RoleBuyer, authorization.RoleAgent), m.RequireAccess("agent", "write"), ok)
		w, _ := perform(t, engine, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("disjoint roles are forbidden", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/x", withRoles(1, authorization.RoleBuyer), m.RequireAccess("agent", "write"), ok)
		w, resp := perform(t, engine, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "access denied: requires one of [AGENT], presented [BUYER]", resp.Error.Message)
	})

	t.Run("no user", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/x", m.RequireAccess("agent", "write"), ok)
		w, _ := perform(t, engine, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("policy failure", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/x", withRoles(1, authorization.RoleAdmin), m.RequireAccess("broken", "read"), ok)
		w, _ := perform(t, engine, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

type mockAgentAccess struct{ mock.Mock }

func (m *mockAgentAccess) Resolve(ctx context.Context, userID uint) (*agent.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*agent.Profile)
	return p, args.Error(1)
}

func (m *mockAgentAccess) AuthorizeWrite(ctx context.Context, a *agent.Profile) error {
	return m.Called(ctx, a).Error(0)
}

type mockBuyerResolver struct{ mock.Mock }

func (m *mockBuyerResolver) Execute(ctx context.Context, userID uint) (*buyer.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*buyer.Profile)
	return p, args.Error(1)
}

func TestProfileMiddleware_AgentGate(t *testing.T) {
	now := time.Now().UTC()
	trialEnded := now.Add(-time.Hour)
	active, err := agent.ReconstructProfile(1, 10, agent.ProfileData{}, now, now)
	require.NoError(t, err)
	expired, err := agent.ReconstructProfile(2, 20, agent.ProfileData{TrialEndsAt: &trialEnded}, now, now)
	require.NoError(t, err)
	suspended, err := agent.ReconstructProfile(3, 30, agent.ProfileData{Suspended: true}, now, now)
	require.NoError(t, err)

	access := new(mockAgentAccess)
	access.On("Resolve", mock.Anything, uint(10)).Return(active, nil)
	access.On("Resolve", mock.Anything, uint(20)).Return(expired, nil)
	access.On("Resolve", mock.Anything, uint(30)).Return(suspended, nil)
	access.On("Resolve", mock.Anything, uint(40)).Return(nil, errors.NewForbiddenError("agent profile not found"))
	access.On("AuthorizeWrite", mock.Anything, active).Return(nil)
	access.On("AuthorizeWrite", mock.Anything, expired).Return(errors.NewPaymentRequiredError("EXPIRED", &trialEnded, nil))
	access.On("AuthorizeWrite", mock.Anything, suspended).Return(errors.NewForbiddenError("agent account is suspended"))

	m := NewProfileMiddleware(access, new(mockBuyerResolver), logger.NewNop())

	newEngine := func(userID uint) *gin.Engine {
		engine := gin.New()
		engine.POST("/agent/properties", withRoles(userID, authorization.RoleAgent), m.RequireAgent(), m.RequireAgentWrite(), func(c *gin.Context) {
			a, found := Agent(c)
			require.True(t, found)
			c.JSON(http.StatusCreated, gin.H{"agent_id": a.ID()})
		})
		return engine
	}

	t.Run("active agent writes", func(t *testing.T) {
		w, _ := perform(t, newEngine(10), httptest.NewRequest(http.MethodPost, "/agent/properties", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("expired trial is payment required", func(t *testing.T) {
		w, resp := perform(t, newEngine(20), httptest.NewRequest(http.MethodPost, "/agent/properties", nil))
		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "EXPIRED", resp.Error.Meta["status"])
		assert.NotEmpty(t, resp.Error.Meta["trial_ends_at"])
	})

	t.Run("suspended agent is forbidden", func(t *testing.T) {
		w, _ := perform(t, newEngine(30), httptest.NewRequest(http.MethodPost, "/agent/properties", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no agent profile", func(t *testing.T) {
		w, _ := perform(t, newEngine(40), httptest.NewRequest(http.MethodPost, "/agent/properties", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestProfileMiddleware_RequireBuyer(t *testing.T) {
	now := time.Now().UTC()
	profile, err := buyer.ReconstructProfile(5, 50, "", "", nil, nil, now, now)
	require.NoError(t, err)

	buyers := new(mockBuyerResolver)
	buyers.On("Execute", mock.Anything, uint(50)).Return(profile, nil)
	m := NewProfileMiddleware(new(mockAgentAccess), buyers, logger.NewNop())

	engine := gin.New()
	engine.GET("/buyer/saved", withRoles(50, authorization.RoleBuyer), m.RequireBuyer(), func(c *gin.Context) {
		b, found := Buyer(c)
		require.True(t, found)
		c.JSON(http.StatusOK, gin.H{"buyer_id": b.ID()})
	})

	w, _ := perform(t, engine, httptest.NewRequest(http.MethodGet, "/buyer/saved", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"buyer_id":5}`, w.Body.String())
	buyers.AssertExpectations(t)
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiter(ratelimit.NewRedisRateLimiter(client), 2, time.Minute, logger.NewNop())
	engine := gin.New()
	engine.POST("/auth/login", rl.Limit("auth"), ok)
	engine.POST("/payments/paystack/initialize", rl.Limit("payments"), ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w, _ := perform(t, engine, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		codes = append(codes, w.Code)
		if i == 2 {
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// scopes keep separate budgets
	w, _ := perform(t, engine, httptest.NewRequest(http.MethodPost, "/payments/paystack/initialize", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	t.Run("fails open when redis is down", func(t *testing.T) {
		mr.Close()
		w, _ := perform(t, engine, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.NewNop()))
	engine.GET("/panic", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(constants.HeaderAuthorization, "Bearer secret")
	w, resp := perform(t, engine, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestCheckBrokenConnection(t *testing.T) {
	broken := &net.OpError{Op: "write", Err: os.NewSyscallError("write", syscall.EPIPE)}
	assert.True(t, checkBrokenConnection(broken))
	assert.False(t, checkBrokenConnection("boom"))
	assert.False(t, checkBrokenConnection(assert.AnError))
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(constants.HeaderXRequestID, "abc-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderXRequestID))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Body.String(), 36)
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"http://localhost:5173"}))
	engine.GET("/x", ok)

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
