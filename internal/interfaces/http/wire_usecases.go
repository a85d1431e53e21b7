package http

import (
	"time"

	adminUsecases "github.com/estatery/estatery/internal/application/admin/usecases"
	agentUsecases "github.com/estatery/estatery/internal/application/agent/usecases"
	buyerUsecases "github.com/estatery/estatery/internal/application/buyer/usecases"
	paymentUsecases "github.com/estatery/estatery/internal/application/payment/usecases"
	propertyUsecases "github.com/estatery/estatery/internal/application/property/usecases"
	subscriptionUsecases "github.com/estatery/estatery/internal/application/subscription/usecases"
	"github.com/estatery/estatery/internal/application/user/helpers"
	userUsecases "github.com/estatery/estatery/internal/application/user/usecases"
)

// allUseCases holds every use case instance, grouped by bounded context.
type allUseCases struct {
	// User & Auth
	register       *userUsecases.RegisterWithPasswordUseCase
	login          *userUsecases.LoginWithPasswordUseCase
	googleLogin    *userUsecases.GoogleLoginUseCase
	requestReset   *userUsecases.RequestPasswordResetUseCase
	resetPassword  *userUsecases.ResetPasswordUseCase
	changePassword *userUsecases.ChangePasswordUseCase
	currentUser    *userUsecases.GetCurrentUserUseCase

	// Property
	listPublic     *propertyUsecases.ListPublicPropertiesUseCase
	getPublic      *propertyUsecases.GetPublicPropertyUseCase
	listProperties *propertyUsecases.ListPropertiesUseCase
	createAgent    *propertyUsecases.CreateAgentPropertyUseCase
	updateAgent    *propertyUsecases.UpdateAgentPropertyUseCase
	createAdmin    *propertyUsecases.CreateAdminPropertyUseCase
	updateAdmin    *propertyUsecases.UpdateAdminPropertyUseCase
	deleteProperty *propertyUsecases.DeletePropertyUseCase
	markSold       *propertyUsecases.MarkSoldUseCase
	review         *propertyUsecases.ReviewPropertyUseCase

	// Agent
	agentDashboard     *agentUsecases.GetDashboardUseCase
	agentProfile       *agentUsecases.GetProfileUseCase
	updateAgentProfile *agentUsecases.UpdateProfileUseCase
	listAgents         *agentUsecases.ListAgentsUseCase
	moderateAgent      *agentUsecases.ModerateAgentUseCase

	// Buyer
	resolveBuyer       *buyerUsecases.ResolveBuyerUseCase
	buyerProfile       *buyerUsecases.GetProfileUseCase
	updateBuyerProfile *buyerUsecases.UpdateProfileUseCase
	saveProperty       *buyerUsecases.SavePropertyUseCase
	unsaveProperty     *buyerUsecases.UnsavePropertyUseCase
	listSaved          *buyerUsecases.ListSavedUseCase
	purchase           *buyerUsecases.PurchasePropertyUseCase
	listPurchases      *buyerUsecases.ListPurchasesUseCase
	contactAgent       *buyerUsecases.ContactAgentUseCase
	listBuyers         *buyerUsecases.ListBuyersUseCase

	// Subscription & Payment
	agentAccess        *subscriptionUsecases.AgentAccessUseCase
	listPlans          *subscriptionUsecases.ListPlansUseCase
	listSubscriptions  *subscriptionUsecases.ListSubscriptionsUseCase
	assignSubscription *subscriptionUsecases.AssignSubscriptionUseCase
	initializePayment  *paymentUsecases.InitializePaymentUseCase
	verifyPayment      *paymentUsecases.VerifyPaymentUseCase
	handleWebhook      *paymentUsecases.HandleWebhookUseCase

	// Admin
	adminDashboard *adminUsecases.GetAdminDashboardUseCase
}

// ============================================================
// Section 2: Use cases
// ============================================================

func (c *Container) initUseCases() {
	cfg := c.cfg
	log := c.log
	r := c.repos
	s := c.svcs
	trial := cfg.Subscription.TrialDuration()
	currency := cfg.Subscription.Currency

	authHelper := helpers.NewAuthHelper(r.userRepo, r.agentRepo, r.buyerRepo, s.jwt, trial, log.Named("auth"))
	activate := paymentUsecases.NewActivatePaymentUseCase(r.paymentRepo, r.subscriptionRepo, r.txManager, cfg.Subscription.PlanDuration(), log)

	c.ucs = &allUseCases{
		register:       userUsecases.NewRegisterWithPasswordUseCase(r.userRepo, s.hasher, authHelper, r.txManager, log),
		login:          userUsecases.NewLoginWithPasswordUseCase(r.userRepo, s.hasher, authHelper, log),
		googleLogin:    userUsecases.NewGoogleLoginUseCase(r.userRepo, s.google, authHelper, log),
		requestReset:   userUsecases.NewRequestPasswordResetUseCase(r.userRepo, s.mailer, time.Duration(cfg.Auth.ResetExpiresMinutes)*time.Minute, log),
		resetPassword:  userUsecases.NewResetPasswordUseCase(r.userRepo, s.hasher, log),
		changePassword: userUsecases.NewChangePasswordUseCase(r.userRepo, s.hasher, log),
		currentUser:    userUsecases.NewGetCurrentUserUseCase(r.userRepo, r.agentRepo, r.buyerRepo, log),

		listPublic:     propertyUsecases.NewListPublicPropertiesUseCase(r.propertyRepo, r.subscriptionRepo, log),
		getPublic:      propertyUsecases.NewGetPublicPropertyUseCase(r.propertyRepo, r.agentRepo, r.userRepo, s.markdown, log),
		listProperties: propertyUsecases.NewListPropertiesUseCase(r.propertyRepo, log),
		createAgent:    propertyUsecases.NewCreateAgentPropertyUseCase(r.propertyRepo, s.storage, log),
		updateAgent:    propertyUsecases.NewUpdateAgentPropertyUseCase(r.propertyRepo, s.storage, log),
		createAdmin:    propertyUsecases.NewCreateAdminPropertyUseCase(r.propertyRepo, r.agentRepo, s.storage, log),
		updateAdmin:    propertyUsecases.NewUpdateAdminPropertyUseCase(r.propertyRepo, s.storage, log),
		deleteProperty: propertyUsecases.NewDeletePropertyUseCase(r.propertyRepo, s.storage, log),
		markSold:       propertyUsecases.NewMarkSoldUseCase(r.propertyRepo, log),
		review:         propertyUsecases.NewReviewPropertyUseCase(r.propertyRepo, r.agentRepo, r.userRepo, s.mailer, log),

		agentDashboard:     agentUsecases.NewGetDashboardUseCase(r.propertyRepo, r.savedRepo, r.leadRepo, r.subscriptionRepo, log),
		agentProfile:       agentUsecases.NewGetProfileUseCase(r.agentRepo, r.userRepo, log),
		updateAgentProfile: agentUsecases.NewUpdateProfileUseCase(r.agentRepo, r.userRepo, log),
		listAgents:         agentUsecases.NewListAgentsUseCase(r.agentRepo, r.userRepo, log),
		moderateAgent:      agentUsecases.NewModerateAgentUseCase(r.agentRepo, r.userRepo, log),

		resolveBuyer:       buyerUsecases.NewResolveBuyerUseCase(r.buyerRepo, log),
		buyerProfile:       buyerUsecases.NewGetProfileUseCase(r.userRepo),
		updateBuyerProfile: buyerUsecases.NewUpdateProfileUseCase(r.buyerRepo, r.userRepo, log),
		saveProperty:       buyerUsecases.NewSavePropertyUseCase(r.savedRepo, r.propertyRepo, log),
		unsaveProperty:     buyerUsecases.NewUnsavePropertyUseCase(r.savedRepo, log),
		listSaved:          buyerUsecases.NewListSavedUseCase(r.savedRepo, r.propertyRepo, log),
		purchase:           buyerUsecases.NewPurchasePropertyUseCase(r.propertyRepo, r.purchaseRepo, r.agentRepo, r.userRepo, r.txManager, s.mailer, currency, log),
		listPurchases:      buyerUsecases.NewListPurchasesUseCase(r.purchaseRepo, r.propertyRepo, log),
		contactAgent:       buyerUsecases.NewContactAgentUseCase(r.leadRepo, r.propertyRepo, r.agentRepo, r.userRepo, s.mailer, cfg.Lead.DedupWindow, log),
		listBuyers:         buyerUsecases.NewListBuyersUseCase(r.buyerRepo, r.userRepo, log),

		agentAccess:        subscriptionUsecases.NewAgentAccessUseCase(r.agentRepo, r.subscriptionRepo, log),
		listPlans:          subscriptionUsecases.NewListPlansUseCase(cfg.Subscription),
		listSubscriptions:  subscriptionUsecases.NewListSubscriptionsUseCase(r.subscriptionRepo, log),
		assignSubscription: subscriptionUsecases.NewAssignSubscriptionUseCase(r.agentRepo, r.userRepo, r.subscriptionRepo, r.txManager, trial, log),
		initializePayment:  paymentUsecases.NewInitializePaymentUseCase(r.paymentRepo, r.userRepo, s.paystack, cfg.Subscription, cfg.Paystack.CallbackURL, log),
		verifyPayment:      paymentUsecases.NewVerifyPaymentUseCase(r.paymentRepo, s.paystack, activate, log),
		handleWebhook:      paymentUsecases.NewHandleWebhookUseCase(s.paystack, activate, log),

		adminDashboard: adminUsecases.NewGetAdminDashboardUseCase(r.userRepo, r.agentRepo, r.buyerRepo, r.propertyRepo, r.purchaseRepo, r.leadRepo, r.paymentRepo, currency, log),
	}
}
