// Package migration applies the database schema with goose or GORM AutoMigrate.
package migration

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/estatery/estatery/internal/infrastructure/database"
	"github.com/estatery/estatery/internal/infrastructure/persistence/models"
	"github.com/estatery/estatery/internal/shared/logger"
)

//go:embed scripts/mysql/*.sql scripts/sqlite/*.sql
var scripts embed.FS

// ScriptsDir is where new migration files are written, relative to the repo root.
const ScriptsDir = "./internal/infrastructure/migration/scripts"

// goose keeps its dialect and filesystem in package state.
var gooseMu sync.Mutex

type Strategy interface {
	Migrate(db *gorm.DB) error
	Name() string
}

// GooseStrategy runs the versioned SQL scripts embedded for one driver.
type GooseStrategy struct {
	driver string
	logger logger.Interface
}

func NewGooseStrategy(driver string, log logger.Interface) *GooseStrategy {
	return &GooseStrategy{driver: driver, logger: log.With("component", "migration.goose")}
}

func (s *GooseStrategy) Name() string {
	return "goose"
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	return s.run(db, func(sqlDB *sql.DB, dir string) error {
		from, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get current version: %w", err)
		}

		if err := goose.Up(sqlDB, dir); err != nil {
			s.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		to, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}
		s.logger.Infow("migration completed successfully", "from_version", from, "to_version", to)
		return nil
	})
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	return s.run(db, func(sqlDB *sql.DB, dir string) error {
		for i := 0; i < steps; i++ {
			if err := goose.Down(sqlDB, dir); err != nil {
				s.logger.Errorw("down migration failed", "error", err, "step", i+1)
				return fmt.Errorf("failed to run down migration: %w", err)
			}
		}
		s.logger.Infow("down migration completed successfully", "steps", steps)
		return nil
	})
}

func (s *GooseStrategy) Version(db *gorm.DB) (int64, error) {
	var version int64
	err := s.run(db, func(sqlDB *sql.DB, _ string) error {
		v, err := goose.GetDBVersion(sqlDB)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

// Status prints the applied state of every script through goose's logger.
func (s *GooseStrategy) Status(db *gorm.DB) error {
	return s.run(db, func(sqlDB *sql.DB, dir string) error {
		if err := goose.Status(sqlDB, dir); err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		return nil
	})
}

func (s *GooseStrategy) run(db *gorm.DB, fn func(sqlDB *sql.DB, dir string) error) error {
	dialect, dir, err := dialectFor(s.driver)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(scripts)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn(sqlDB, dir)
}

// Create writes an empty SQL migration for every supported driver under root.
func Create(root, name string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(nil)
	for _, driver := range []string{database.DriverMySQL, database.DriverSQLite} {
		_, dir, _ := dialectFor(driver)
		if err := goose.Create(nil, root+"/"+driver, name, "sql"); err != nil {
			return fmt.Errorf("failed to create %s migration in %s: %w", driver, dir, err)
		}
	}
	return nil
}

// Scripts lists the embedded script names for a driver.
func Scripts(driver string) ([]string, error) {
	_, dir, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return fs.Glob(scripts, dir+"/*.sql")
}

func dialectFor(driver string) (dialect, dir string, err error) {
	switch driver {
	case database.DriverMySQL, "":
		return "mysql", "scripts/mysql", nil
	case database.DriverSQLite:
		return "sqlite3", "scripts/sqlite", nil
	}
	return "", "", fmt.Errorf("no migrations for driver %q", driver)
}

// AutoMigrateStrategy creates tables straight from the GORM models. Meant for
// local development and tests.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *AutoMigrateStrategy) Name() string {
	return "gorm_automigrate"
}

func (s *AutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.All()
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	s.logger.Infow("auto migration completed", "models_count", len(all))
	return nil
}
