package models

import (
	"time"

	"github.com/estatery/estatery/internal/shared/constants"
)

type SavedPropertyModel struct {
	ID             uint `gorm:"primarykey"`
	BuyerProfileID uint `gorm:"not null;uniqueIndex:idx_saved_pair,priority:1"`
	PropertyID     uint `gorm:"not null;uniqueIndex:idx_saved_pair,priority:2;index"`
	CreatedAt      time.Time
}

func (SavedPropertyModel) TableName() string {
	return constants.TableSavedProps
}

// PurchaseModel is unique per property, which also makes it unique per (buyer, property).
type PurchaseModel struct {
	ID             uint  `gorm:"primarykey"`
	BuyerProfileID uint  `gorm:"not null;uniqueIndex:idx_purchase_pair,priority:1"`
	PropertyID     uint  `gorm:"not null;uniqueIndex:idx_purchase_pair,priority:2;uniqueIndex:idx_purchase_property"`
	Price          int64 `gorm:"not null"`
	CreatedAt      time.Time
}

func (PurchaseModel) TableName() string {
	return constants.TablePurchases
}

type LeadModel struct {
	ID             uint   `gorm:"primarykey"`
	BuyerProfileID uint   `gorm:"not null;index:idx_lead_pair,priority:1"`
	PropertyID     uint   `gorm:"not null;index:idx_lead_pair,priority:2"`
	AgentProfileID uint   `gorm:"not null;index"`
	Message        string `gorm:"type:text"`
	Channel        string `gorm:"not null;size:20"`
	CreatedAt      time.Time `gorm:"index:idx_lead_pair,priority:3"`
}

func (LeadModel) TableName() string {
	return constants.TableLeads
}
