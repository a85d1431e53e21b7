package http

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/estatery/estatery/internal/infrastructure/config"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
	"github.com/estatery/estatery/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases and
// handlers, wired in dependency order. Shutdown releases what it opened.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	sqlDB  *sql.DB
	cfg    *config.Config
	log    logger.Interface
	redis  redis.UniversalClient

	repos *repositories
	svcs  *services
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	profileMiddleware    *middleware.ProfileMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer wires every component over an open database and redis client.
// Both are closed by Shutdown.
func NewContainer(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}
	c.engine.MaxMultipartMemory = cfg.Upload.MaxFileSize()

	// Section 1: Infrastructure - repositories, outbound services, policy
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Middlewares and handlers
	c.initMiddlewares()
	c.initHandlers()

	return c, nil
}

// Engine returns the gin engine routes are registered on.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown closes redis and the database connection.
func (c *Container) Shutdown() error {
	var firstErr error

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis", "error", err)
			firstErr = fmt.Errorf("failed to close redis: %w", err)
		}
	}

	if err := c.sqlDB.Close(); err != nil {
		c.log.Warnw("failed to close database", "error", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to close database: %w", err)
		}
	}

	if firstErr == nil {
		c.log.Infow("container shut down")
	}
	return firstErr
}
