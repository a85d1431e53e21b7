package models

import (
	"time"

	"github.com/estatery/estatery/internal/shared/constants"
)

type AgentProfileModel struct {
	ID             uint   `gorm:"primarykey"`
	UserID         uint   `gorm:"uniqueIndex;not null"`
	AgencyName     string `gorm:"size:150"`
	Bio            string `gorm:"type:text"`
	Phone          string `gorm:"size:30"`
	Whatsapp       string `gorm:"size:30"`
	Verified       bool   `gorm:"not null;default:false"`
	Suspended      bool   `gorm:"not null;default:false;index"`
	TrialStartedAt *time.Time
	TrialEndsAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (AgentProfileModel) TableName() string {
	return constants.TableAgentProfiles
}

type BuyerProfileModel struct {
	ID                uint   `gorm:"primarykey"`
	UserID            uint   `gorm:"uniqueIndex;not null"`
	Phone             string `gorm:"size:30"`
	PreferredLocation string `gorm:"size:255"`
	BudgetMin         *int64
	BudgetMax         *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (BuyerProfileModel) TableName() string {
	return constants.TableBuyerProfiles
}

type SubscriptionModel struct {
	ID             uint   `gorm:"primarykey"`
	AgentProfileID uint   `gorm:"uniqueIndex;not null"`
	Plan           string `gorm:"not null;size:20"`
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
