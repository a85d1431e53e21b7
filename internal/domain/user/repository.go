package user

import (
	"context"

	"github.com/estatery/estatery/internal/shared/authorization"
)

type ListFilter struct {
	Role     authorization.Role
	Search   string
	Page     int
	PageSize int
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	// Update saves user columns and inserts any roles not yet stored.
	Update(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*User, error)
	GetByResetTokenHash(ctx context.Context, hash string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	CountByRole(ctx context.Context, role authorization.Role) (int64, error)
}
