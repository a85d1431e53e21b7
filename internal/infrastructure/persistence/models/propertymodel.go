package models

import (
	"time"

	"github.com/estatery/estatery/internal/shared/constants"
)

type PropertyModel struct {
	ID              uint                 `gorm:"primarykey"`
	Title           string               `gorm:"not null;size:200"`
	Location        string               `gorm:"not null;size:255;index"`
	Description     string               `gorm:"type:text"`
	Price           int64                `gorm:"not null;index"`
	Status          string               `gorm:"not null;size:20;index"`
	RejectionReason *string              `gorm:"size:500"`
	Category        string               `gorm:"not null;size:50;index"`
	PropertyType    string               `gorm:"size:50"`
	TransactionType string               `gorm:"not null;size:10"`
	Bedrooms        int                  `gorm:"not null;default:0"`
	Bathrooms       int                  `gorm:"not null;default:0"`
	Size            int                  `gorm:"not null;default:0"`
	Furnishing      string               `gorm:"not null;size:20"`
	ListedByAdmin   bool                 `gorm:"not null;default:false"`
	AgentProfileID  *uint                `gorm:"index"`
	Images          []PropertyImageModel `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"index"`
	UpdatedAt       time.Time
}

func (PropertyModel) TableName() string {
	return constants.TableProperties
}

type PropertyImageModel struct {
	ID         uint   `gorm:"primarykey"`
	PropertyID uint   `gorm:"not null;index"`
	URL        string `gorm:"not null;size:500"`
	Position   int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

func (PropertyImageModel) TableName() string {
	return constants.TablePropertyImages
}
