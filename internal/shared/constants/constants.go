package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization     = "Authorization"
	HeaderXRequestID        = "X-Request-ID"
	HeaderPaystackSignature = "x-paystack-signature"

	// Context keys set by the auth and request id middleware
	ContextKeyUserID    = "user_id"
	ContextKeyUserRoles = "user_roles"
	ContextKeyRequestID = "request_id"
	ContextKeyAgent     = "agent_profile"
	ContextKeyBuyer     = "buyer_profile"

	TableUsers          = "users"
	TableUserRoles      = "user_roles"
	TableAgentProfiles  = "agent_profiles"
	TableBuyerProfiles  = "buyer_profiles"
	TableSubscriptions  = "subscriptions"
	TableProperties     = "properties"
	TablePropertyImages = "property_images"
	TableSavedProps     = "saved_properties"
	TablePurchases      = "property_purchases"
	TableLeads          = "property_leads"
	TablePayments       = "payments"

	ErrMsgInternalServerError = "Internal server error occurred"
)
