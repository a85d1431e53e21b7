package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/infrastructure/permission"
	buyerHandlers "github.com/estatery/estatery/internal/interfaces/http/handlers/buyer"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
)

// BuyerRouteConfig holds dependencies for buyer routes.
type BuyerRouteConfig struct {
	BuyerHandler         *buyerHandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	ProfileMiddleware    *middleware.ProfileMiddleware
}

// SetupBuyerRoutes configures /buyer.
func SetupBuyerRoutes(engine *gin.Engine, cfg *BuyerRouteConfig) {
	h := cfg.BuyerHandler
	write := cfg.PermissionMiddleware.RequireAccess(permission.ResourceBuyer, permission.ActionWrite)

	buyer := engine.Group("/buyer")
	buyer.Use(
		cfg.AuthMiddleware.RequireAuth(),
		cfg.PermissionMiddleware.RequireAccess(permission.ResourceBuyer, permission.ActionRead),
		cfg.ProfileMiddleware.RequireBuyer(),
	)
	{
		buyer.GET("/profile", h.GetProfile)
		buyer.PATCH("/profile", write, h.UpdateProfile)

		buyer.GET("/saved", h.ListSaved)
		buyer.POST("/save", write, h.SaveProperty)
		buyer.DELETE("/save/:propertyId", write, h.UnsaveProperty)

		buyer.GET("/purchases", h.ListPurchases)
		buyer.POST("/buy", write, h.Buy)

		buyer.POST("/contact-agent", write, h.ContactAgent)
	}
}
