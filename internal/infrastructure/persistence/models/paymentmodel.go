package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/estatery/estatery/internal/shared/constants"
)

type PaymentModel struct {
	ID               uint   `gorm:"primarykey"`
	Reference        string `gorm:"uniqueIndex;not null;size:64"`
	AgentProfileID   uint   `gorm:"not null;index"`
	Plan             string `gorm:"not null;size:20"`
	Amount           int64  `gorm:"not null"`
	Currency         string `gorm:"not null;size:3"`
	Status           string `gorm:"not null;size:20;index"`
	AuthorizationURL string `gorm:"size:500"`
	GatewayResponse  datatypes.JSONMap
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (PaymentModel) TableName() string {
	return constants.TablePayments
}
