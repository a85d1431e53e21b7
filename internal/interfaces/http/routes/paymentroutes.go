package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/infrastructure/permission"
	"github.com/estatery/estatery/internal/interfaces/http/handlers"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	PaymentHandler       *handlers.PaymentHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	ProfileMiddleware    *middleware.ProfileMiddleware
	RateLimiter          *middleware.RateLimiter
}

// SetupPaymentRoutes configures Paystack routes. The webhook is
// authenticated by its signature, not by a token.
func SetupPaymentRoutes(engine *gin.Engine, cfg *PaymentRouteConfig) {
	paystack := engine.Group("/payments/paystack")
	{
		paystack.POST("/webhook", cfg.PaymentHandler.Webhook)

		agentOnly := paystack.Group("")
		agentOnly.Use(cfg.AuthMiddleware.RequireAuth())
		{
			agentOnly.POST("/initialize",
				cfg.PermissionMiddleware.RequireAccess(permission.ResourcePayments, permission.ActionWrite),
				cfg.ProfileMiddleware.RequireAgent(),
				cfg.RateLimiter.Limit("payments"),
				cfg.PaymentHandler.Initialize)
			agentOnly.GET("/verify/:reference",
				cfg.PermissionMiddleware.RequireAccess(permission.ResourcePayments, permission.ActionRead),
				cfg.ProfileMiddleware.RequireAgent(),
				cfg.PaymentHandler.Verify)
		}
	}
}
