package models

import (
	"time"

	"github.com/estatery/estatery/internal/shared/constants"
)

// UserModel is the persistence shape of an account.
type UserModel struct {
	ID             uint            `gorm:"primarykey"`
	Email          string          `gorm:"uniqueIndex;not null;size:255"`
	Name           string          `gorm:"not null;size:100"`
	Phone          string          `gorm:"size:30"`
	AvatarURL      string          `gorm:"size:500"`
	PasswordHash   *string         `gorm:"size:255"`
	GoogleID       *string         `gorm:"uniqueIndex;size:64"`
	ResetTokenHash *string         `gorm:"index;size:64"`
	ResetExpiresAt *time.Time
	Roles          []UserRoleModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}

// UserRoleModel is one row of the user to role join table.
type UserRoleModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_role,priority:1"`
	Role      string `gorm:"not null;size:20;uniqueIndex:idx_user_role,priority:2;index:idx_role"`
	CreatedAt time.Time
}

func (UserRoleModel) TableName() string {
	return constants.TableUserRoles
}
