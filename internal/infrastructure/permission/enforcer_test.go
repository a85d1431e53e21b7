package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/estatery/estatery/internal/shared/authorization"
	"github.com/estatery/estatery/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	e, err := NewEnforcer(db, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, SeedDefaultPolicies(e, logger.NewNop()))
	return e
}

func TestEnforcer_AllowedRoles(t *testing.T) {
	e := newTestEnforcer(t)

	tests := []struct {
		resource, action string
		want             []authorization.Role
	}{
		{ResourceAgent, ActionWrite, []authorization.Role{authorization.RoleAgent}},
		{ResourceBuyer, ActionRead, []authorization.Role{authorization.RoleBuyer}},
		{ResourceAdmin, ActionWrite, []authorization.Role{authorization.RoleAdmin}},
		{ResourceAccount, ActionRead, []authorization.Role{authorization.RoleAdmin, authorization.RoleAgent, authorization.RoleBuyer}},
		{"unknown", ActionRead, []authorization.Role{}},
	}

	for _, tt := range tests {
		t.Run(tt.resource+":"+tt.action, func(t *testing.T) {
			got, err := e.AllowedRoles(tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Slice())
		})
	}
}

func TestSeedDefaultPolicies_IsRepeatable(t *testing.T) {
	e := newTestEnforcer(t)
	require.NoError(t, SeedDefaultPolicies(e, logger.NewNop()))

	require.NoError(t, e.LoadPolicy())
	ok, err := e.Enforce(authorization.RoleBuyer, ResourceAgent, ActionWrite)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnforcer_RemovePolicy(t *testing.T) {
	e := newTestEnforcer(t)

	require.NoError(t, e.RemovePolicy(authorization.RoleAgent, ResourcePayments, ActionWrite))
	got, err := e.AllowedRoles(ResourcePayments, ActionWrite)
	require.NoError(t, err)
	assert.False(t, got.Has(authorization.RoleAgent))
}
