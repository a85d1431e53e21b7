package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/interfaces/http/handlers"
)

// PublicRouteConfig holds dependencies for routes served without a token.
type PublicRouteConfig struct {
	PropertyHandler *handlers.PropertyHandler
	PlanHandler     *handlers.PlanHandler
	HealthHandler   *handlers.HealthHandler
}

// SetupPublicRoutes configures the public catalog, plan and health routes.
func SetupPublicRoutes(engine *gin.Engine, cfg *PublicRouteConfig) {
	engine.GET("/health", cfg.HealthHandler.HealthCheck)
	engine.GET("/plans", cfg.PlanHandler.ListPlans)

	properties := engine.Group("/properties")
	{
		properties.GET("", cfg.PropertyHandler.ListProperties)
		properties.GET("/:id", cfg.PropertyHandler.GetProperty)
	}
}
