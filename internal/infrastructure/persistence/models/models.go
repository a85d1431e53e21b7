// Package models holds the GORM persistence shapes, kept apart from the domain aggregates.
package models

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&UserRoleModel{},
		&AgentProfileModel{},
		&BuyerProfileModel{},
		&SubscriptionModel{},
		&PropertyModel{},
		&PropertyImageModel{},
		&SavedPropertyModel{},
		&PurchaseModel{},
		&LeadModel{},
		&PaymentModel{},
	}
}
