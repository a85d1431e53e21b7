package agent

import "context"

type ListFilter struct {
	Suspended *bool
	Verified  *bool
	Page      int
	PageSize  int
}

type Repository interface {
	// Provision inserts p unless the user already has a profile, and returns
	// the stored profile either way.
	Provision(ctx context.Context, p *Profile) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uint) (*Profile, error)
	GetByUserID(ctx context.Context, userID uint) (*Profile, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Profile, error)
	List(ctx context.Context, filter ListFilter) ([]*Profile, int64, error)
	Count(ctx context.Context) (int64, error)
}
