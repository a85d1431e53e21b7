package migration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/estatery/estatery/internal/infrastructure/database"
	"github.com/estatery/estatery/internal/shared/config"
	"github.com/estatery/estatery/internal/shared/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "migrate.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestGooseStrategy_UpAndDown(t *testing.T) {
	db := openSQLite(t)
	s := NewGooseStrategy(database.DriverSQLite, logger.NewNop())

	require.NoError(t, s.Migrate(db))
	version, err := s.Version(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	for _, table := range []string{"users", "user_roles", "properties", "property_images", "property_purchases", "payments"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// Re-running is a no-op.
	require.NoError(t, s.Migrate(db))

	require.NoError(t, s.MigrateDown(db, 1))
	assert.False(t, db.Migrator().HasTable("properties"))
}

func TestScripts_EveryDriverHasTheSameVersions(t *testing.T) {
	mysqlScripts, err := Scripts(database.DriverMySQL)
	require.NoError(t, err)
	sqliteScripts, err := Scripts(database.DriverSQLite)
	require.NoError(t, err)

	require.NotEmpty(t, mysqlScripts)
	require.Len(t, sqliteScripts, len(mysqlScripts))
	for i := range mysqlScripts {
		assert.Equal(t, filepath.Base(mysqlScripts[i]), filepath.Base(sqliteScripts[i]))
	}

	_, err = Scripts("postgres")
	assert.Error(t, err)
}

func TestAutoMigrateStrategy(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, NewAutoMigrateStrategy(logger.NewNop()).Migrate(db))
	assert.True(t, db.Migrator().HasTable("agent_profiles"))
	assert.True(t, db.Migrator().HasTable("property_leads"))
}
