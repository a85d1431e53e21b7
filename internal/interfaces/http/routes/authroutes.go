package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/interfaces/http/handlers"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		limited := auth.Group("")
		limited.Use(cfg.RateLimiter.Limit("auth"))
		{
			limited.POST("/signup", cfg.AuthHandler.Signup)
			limited.POST("/login", cfg.AuthHandler.Login)
			limited.POST("/google", cfg.AuthHandler.GoogleLogin)
			limited.POST("/forgot-password", cfg.AuthHandler.ForgotPassword)
			limited.POST("/reset-password/:token", cfg.AuthHandler.ResetPassword)
		}

		auth.POST("/change-password", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.ChangePassword)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Me)
	}
}
