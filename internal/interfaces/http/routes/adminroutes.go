package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/infrastructure/permission"
	adminHandlers "github.com/estatery/estatery/internal/interfaces/http/handlers/admin"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for admin-only routes.
type AdminRouteConfig struct {
	DashboardHandler     *adminHandlers.DashboardHandler
	AgentHandler         *adminHandlers.AgentHandler
	BuyerHandler         *adminHandlers.BuyerHandler
	PropertyHandler      *adminHandlers.PropertyHandler
	SubscriptionHandler  *adminHandlers.SubscriptionHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures admin-only routes.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	write := cfg.PermissionMiddleware.RequireAccess(permission.ResourceAdmin, permission.ActionWrite)

	admin := engine.Group("/admin")
	admin.Use(
		cfg.AuthMiddleware.RequireAuth(),
		cfg.PermissionMiddleware.RequireAccess(permission.ResourceAdmin, permission.ActionRead),
	)
	{
		admin.GET("/dashboard", cfg.DashboardHandler.GetDashboard)

		admin.GET("/agents", cfg.AgentHandler.ListAgents)
		admin.PATCH("/agents/:id/suspend", write, cfg.AgentHandler.Suspend)
		admin.PATCH("/agents/:id/verify", write, cfg.AgentHandler.Verify)

		admin.GET("/buyers", cfg.BuyerHandler.ListBuyers)

		admin.GET("/properties", cfg.PropertyHandler.ListProperties)
		admin.POST("/properties", write, cfg.PropertyHandler.CreateProperty)
		admin.PATCH("/properties/:id", write, cfg.PropertyHandler.UpdateProperty)
		admin.DELETE("/properties/:id", write, cfg.PropertyHandler.DeleteProperty)
		admin.PATCH("/properties/:id/review", write, cfg.PropertyHandler.ReviewProperty)

		admin.GET("/subscriptions", cfg.SubscriptionHandler.ListSubscriptions)
		admin.POST("/subscriptions", write, cfg.SubscriptionHandler.AssignSubscription)
	}
}
