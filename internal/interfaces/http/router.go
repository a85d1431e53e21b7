package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/estatery/estatery/internal/infrastructure/config"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
	"github.com/estatery/estatery/internal/interfaces/http/routes"
	"github.com/estatery/estatery/internal/shared/logger"

	_ "github.com/estatery/estatery/docs"
)

// Version is reported by /health. Overridden at build time with -ldflags.
var Version = "dev"

// Router represents the HTTP router configuration
type Router struct {
	engine    *gin.Engine
	container *Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient, log logger.Interface) (*Router, error) {
	c, err := NewContainer(cfg, db, redisClient, log)
	if err != nil {
		return nil, err
	}
	return &Router{engine: c.Engine(), container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container
	cfg := c.cfg

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(c.log.Named("access")))
	r.engine.Use(middleware.Recovery(c.log))
	r.engine.Use(middleware.ErrorHandler(c.log))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.Static(c.svcs.storage.PublicPath(), c.svcs.storage.Dir())

	r.setupPublicRoutes()
	r.setupAuthRoutes()
	r.setupAgentRoutes()
	r.setupBuyerRoutes()
	r.setupAdminRoutes()
	r.setupPaymentRoutes()
}

func (r *Router) setupPublicRoutes() {
	h := r.container.hdlrs
	routes.SetupPublicRoutes(r.engine, &routes.PublicRouteConfig{
		PropertyHandler: h.propertyHandler,
		PlanHandler:     h.planHandler,
		HealthHandler:   h.healthHandler,
	})
}

func (r *Router) setupAuthRoutes() {
	c := r.container
	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
	})
}

func (r *Router) setupAgentRoutes() {
	c := r.container
	routes.SetupAgentRoutes(r.engine, &routes.AgentRouteConfig{
		AgentHandler:         c.hdlrs.agentHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		ProfileMiddleware:    c.profileMiddleware,
	})
}

func (r *Router) setupBuyerRoutes() {
	c := r.container
	routes.SetupBuyerRoutes(r.engine, &routes.BuyerRouteConfig{
		BuyerHandler:         c.hdlrs.buyerHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		ProfileMiddleware:    c.profileMiddleware,
	})
}

func (r *Router) setupAdminRoutes() {
	c := r.container
	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		DashboardHandler:     c.hdlrs.adminDashboardHandler,
		AgentHandler:         c.hdlrs.adminAgentHandler,
		BuyerHandler:         c.hdlrs.adminBuyerHandler,
		PropertyHandler:      c.hdlrs.adminPropertyHandler,
		SubscriptionHandler:  c.hdlrs.adminSubscriptionHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

func (r *Router) setupPaymentRoutes() {
	c := r.container
	routes.SetupPaymentRoutes(r.engine, &routes.PaymentRouteConfig{
		PaymentHandler:       c.hdlrs.paymentHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		ProfileMiddleware:    c.profileMiddleware,
		RateLimiter:          c.rateLimiter,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Shutdown releases the database and redis connections.
func (r *Router) Shutdown() error {
	return r.container.Shutdown()
}
