package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/infrastructure/permission"
	agentHandlers "github.com/estatery/estatery/internal/interfaces/http/handlers/agent"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
)

// AgentRouteConfig holds dependencies for the agent workspace routes.
type AgentRouteConfig struct {
	AgentHandler         *agentHandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	ProfileMiddleware    *middleware.ProfileMiddleware
}

// SetupAgentRoutes configures /agent. Listing writes pass the suspension
// check and the subscription gate before reaching the handler.
func SetupAgentRoutes(engine *gin.Engine, cfg *AgentRouteConfig) {
	h := cfg.AgentHandler
	read := cfg.PermissionMiddleware.RequireAccess(permission.ResourceAgent, permission.ActionRead)
	write := cfg.PermissionMiddleware.RequireAccess(permission.ResourceAgent, permission.ActionWrite)
	gated := cfg.ProfileMiddleware.RequireAgentWrite()

	agent := engine.Group("/agent")
	agent.Use(cfg.AuthMiddleware.RequireAuth(), read, cfg.ProfileMiddleware.RequireAgent())
	{
		agent.GET("/dashboard", h.Dashboard)

		agent.GET("/profile", h.GetProfile)
		agent.PATCH("/profile", write, h.UpdateProfile)

		// /drafts must be registered before /:id
		agent.GET("/properties", h.ListProperties)
		agent.GET("/properties/drafts", h.ListDrafts)
		agent.POST("/properties", write, gated, h.CreateProperty)
		agent.PATCH("/properties/:id", write, gated, h.UpdateProperty)
		agent.DELETE("/properties/:id", write, gated, h.DeleteProperty)
		agent.PATCH("/properties/:id/sold", write, gated, h.MarkSold)
	}
}
