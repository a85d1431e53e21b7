package http

import (
	"github.com/estatery/estatery/internal/interfaces/http/handlers"
	adminHandlers "github.com/estatery/estatery/internal/interfaces/http/handlers/admin"
	agentHandlers "github.com/estatery/estatery/internal/interfaces/http/handlers/agent"
	buyerHandlers "github.com/estatery/estatery/internal/interfaces/http/handlers/buyer"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// Public & Auth
	authHandler     *handlers.AuthHandler
	propertyHandler *handlers.PropertyHandler
	planHandler     *handlers.PlanHandler
	healthHandler   *handlers.HealthHandler
	paymentHandler  *handlers.PaymentHandler

	// Role workspaces
	agentHandler *agentHandlers.Handler
	buyerHandler *buyerHandlers.Handler

	// Admin
	adminDashboardHandler    *adminHandlers.DashboardHandler
	adminAgentHandler        *adminHandlers.AgentHandler
	adminBuyerHandler        *adminHandlers.BuyerHandler
	adminPropertyHandler     *adminHandlers.PropertyHandler
	adminSubscriptionHandler *adminHandlers.SubscriptionHandler
}

// ============================================================
// Section 3: Middlewares and handlers
// ============================================================

func (c *Container) initMiddlewares() {
	log := c.log.Named("http")

	limit := c.cfg.RateLimit.Limit
	if !c.cfg.RateLimit.Enabled {
		limit = 0
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.svcs.jwt, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.svcs.enforcer, log)
	c.profileMiddleware = middleware.NewProfileMiddleware(c.ucs.agentAccess, c.ucs.resolveBuyer, log)
	c.rateLimiter = middleware.NewRateLimiter(c.svcs.limiter, limit, c.cfg.RateLimit.Window, log)
}

func (c *Container) initHandlers() {
	log := c.log
	u := c.ucs

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(
			u.register, u.login, u.googleLogin, u.requestReset, u.resetPassword, u.changePassword, u.currentUser, log,
		),
		propertyHandler: handlers.NewPropertyHandler(u.listPublic, u.getPublic, log),
		planHandler:     handlers.NewPlanHandler(u.listPlans),
		healthHandler:   handlers.NewHealthHandler(c.sqlDB, Version, log),
		paymentHandler:  handlers.NewPaymentHandler(u.initializePayment, u.verifyPayment, u.handleWebhook, log),

		agentHandler: agentHandlers.NewHandler(
			u.agentDashboard, u.agentProfile, u.updateAgentProfile, u.listProperties,
			u.createAgent, u.updateAgent, u.deleteProperty, u.markSold, log,
		),
		buyerHandler: buyerHandlers.NewHandler(
			u.buyerProfile, u.updateBuyerProfile, u.saveProperty, u.unsaveProperty, u.listSaved,
			u.purchase, u.listPurchases, u.contactAgent, log,
		),

		adminDashboardHandler: adminHandlers.NewDashboardHandler(u.adminDashboard, log),
		adminAgentHandler:     adminHandlers.NewAgentHandler(u.listAgents, u.moderateAgent, log),
		adminBuyerHandler:     adminHandlers.NewBuyerHandler(u.listBuyers, log),
		adminPropertyHandler: adminHandlers.NewPropertyHandler(
			u.listProperties, u.createAdmin, u.updateAdmin, u.deleteProperty, u.review, log,
		),
		adminSubscriptionHandler: adminHandlers.NewSubscriptionHandler(u.listSubscriptions, u.assignSubscription, log),
	}
}
