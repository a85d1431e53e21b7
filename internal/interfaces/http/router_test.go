package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatery/estatery/internal/application/testutil"
	"github.com/estatery/estatery/internal/application/user/usecases"
	"github.com/estatery/estatery/internal/infrastructure/auth"
	"github.com/estatery/estatery/internal/infrastructure/config"
	"github.com/estatery/estatery/internal/infrastructure/repository"
	apphttp "github.com/estatery/estatery/internal/interfaces/http"
	sharedConfig "github.com/estatery/estatery/internal/shared/config"
	"github.com/estatery/estatery/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string         `json:"type"`
		Message string         `json:"message"`
		Meta    map[string]any `json:"meta"`
	} `json:"error"`
}

type api struct {
	t      *testing.T
	engine *gin.Engine
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (a *api) data(env envelope, target any) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(env.Data, target))
}

func (a *api) signup(email, role string) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    email,
		"name":     "Test " + role,
		"password": "password123",
		"role":     role,
	})
	require.Equal(a.t, http.StatusCreated, code, env.Error)
	var out struct {
		Token string `json:"token"`
	}
	a.data(env, &out)
	require.NotEmpty(a.t, out.Token)
	return out.Token
}

func (a *api) login(email, role string) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	require.Equal(a.t, http.StatusOK, code, env.Error)
	var out struct {
		Token string `json:"token"`
	}
	a.data(env, &out)
	return out.Token
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: sharedConfig.ServerConfig{
			Mode:           "test",
			FrontendURL:    "http://localhost:5173",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Database: sharedConfig.DatabaseConfig{Driver: "sqlite"},
		Auth: sharedConfig.AuthConfig{
			BcryptCost:          4,
			ResetExpiresMinutes: 30,
			JWT:                 sharedConfig.JWTConfig{Secret: "router-test-secret", AccessExpMinutes: 60},
		},
		RateLimit: sharedConfig.RateLimitConfig{Enabled: true, Limit: 100, Window: time.Minute},
		Subscription: sharedConfig.SubscriptionConfig{
			TrialDays:        14,
			PlanDurationDays: 30,
			Currency:         "NGN",
			Plans:            sharedConfig.PlanPricing{Basic: 500000, Premium: 1500000},
		},
		Lead: sharedConfig.LeadConfig{DedupWindow: time.Hour},
		Upload: sharedConfig.UploadConfig{
			Dir:           t.TempDir(),
			PublicPath:    "/uploads",
			MaxFileSizeMB: 5,
			MaxFiles:      10,
		},
	}
}

func newAPI(t *testing.T) *api {
	t.Helper()
	db := testutil.NewDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig(t)
	router, err := apphttp.NewRouter(cfg, db, client, logger.NewNop())
	require.NoError(t, err)
	router.SetupRoutes()

	createAdmin := usecases.NewCreateAdminUseCase(
		repository.NewUserRepository(db),
		auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost),
		logger.NewNop(),
	)
	_, err = createAdmin.Execute(context.Background(), usecases.CreateAdminCommand{
		Email:    "admin@example.com",
		Name:     "Admin",
		Password: "password123",
	})
	require.NoError(t, err)

	return &api{t: t, engine: router.GetEngine()}
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	code, env := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestListingLifecycle(t *testing.T) {
	a := newAPI(t)

	agentToken := a.signup("agent@example.com", "AGENT")
	adminToken := a.login("admin@example.com", "ADMIN")

	code, env := a.do(http.MethodGet, "/auth/me", agentToken, nil)
	require.Equal(t, http.StatusOK, code)
	var me struct {
		AgentProfileID *uint `json:"agent_profile_id"`
	}
	a.data(env, &me)
	require.NotNil(t, me.AgentProfileID)

	code, env = a.do(http.MethodPost, "/admin/subscriptions", adminToken, map[string]any{
		"agent_id": *me.AgentProfileID,
		"plan":     "BASIC",
	})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = a.do(http.MethodPost, "/agent/properties", agentToken, map[string]any{
		"title":    "3 bedroom flat",
		"location": "Lekki, Lagos",
		"price":    25000000,
		"category": "RESIDENTIAL",
		"bedrooms": 3,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var listing struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	a.data(env, &listing)
	assert.Equal(t, "PENDING", listing.Status)
	propertyPath := fmt.Sprintf("/properties/%d", listing.ID)

	// pending listings stay private
	code, _ = a.do(http.MethodGet, propertyPath, "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = a.do(http.MethodPatch, "/admin"+propertyPath+"/review", adminToken, map[string]string{"action": "approve"})
	require.Equal(t, http.StatusOK, code, env.Error)
	a.data(env, &listing)
	assert.Equal(t, "APPROVED", listing.Status)

	code, env = a.do(http.MethodGet, "/properties", "", nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Items []struct {
			ID uint `json:"id"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	a.data(env, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, listing.ID, page.Items[0].ID)

	buyerToken := a.signup("buyer@example.com", "BUYER")

	code, env = a.do(http.MethodPost, "/buyer/buy", buyerToken, map[string]uint{"property_id": listing.ID})
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, _ = a.do(http.MethodPost, "/buyer/buy", buyerToken, map[string]uint{"property_id": listing.ID})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = a.do(http.MethodPatch, "/agent"+propertyPath, agentToken, map[string]string{"title": "new title"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = a.do(http.MethodGet, "/buyer/purchases", buyerToken, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRoleBoundaries(t *testing.T) {
	a := newAPI(t)
	buyerToken := a.signup("buyer@example.com", "BUYER")
	agentToken := a.signup("agent@example.com", "AGENT")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"anonymous agent dashboard", http.MethodGet, "/agent/dashboard", "", http.StatusUnauthorized},
		{"buyer on agent routes", http.MethodGet, "/agent/dashboard", buyerToken, http.StatusForbidden},
		{"agent on buyer routes", http.MethodGet, "/buyer/saved", agentToken, http.StatusForbidden},
		{"buyer on admin routes", http.MethodGet, "/admin/dashboard", buyerToken, http.StatusForbidden},
		{"agent on admin routes", http.MethodGet, "/admin/agents", agentToken, http.StatusForbidden},
		{"agent dashboard", http.MethodGet, "/agent/dashboard", agentToken, http.StatusOK},
		{"buyer saved list", http.MethodGet, "/buyer/saved", buyerToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := a.do(tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, code)
			if tt.want == http.StatusForbidden && env.Error != nil {
				assert.Contains(t, env.Error.Message, "access denied")
			}
		})
	}
}

func TestSignupRejectsAdminRole(t *testing.T) {
	a := newAPI(t)
	code, _ := a.do(http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    "mallory@example.com",
		"name":     "Mallory",
		"password": "password123",
		"role":     "ADMIN",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}
