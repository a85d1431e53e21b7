package buyer

import (
	"context"
	"time"
)

type ProfileRepository interface {
	Provision(ctx context.Context, p *Profile) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID uint) (*Profile, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Profile, error)
	List(ctx context.Context, page, pageSize int) ([]*Profile, int64, error)
	Count(ctx context.Context) (int64, error)
}

type SavedPropertyRepository interface {
	// Save is idempotent and returns the stored row.
	Save(ctx context.Context, s *SavedProperty) (*SavedProperty, error)
	// Delete reports false when nothing was saved for the pair.
	Delete(ctx context.Context, buyerID, propertyID uint) (bool, error)
	ListByBuyer(ctx context.Context, buyerID uint) ([]*SavedProperty, error)
	CountByAgent(ctx context.Context, agentID uint) (int64, error)
}

type PurchaseRepository interface {
	// Create fails with ErrAlreadyPurchased on a unique violation.
	Create(ctx context.Context, p *Purchase) error
	ListByBuyer(ctx context.Context, buyerID uint) ([]*Purchase, error)
	Count(ctx context.Context) (int64, error)
}

type LeadRepository interface {
	Create(ctx context.Context, l *Lead) error
	// FindRecent returns the newest lead for the pair created at or after since, or nil.
	FindRecent(ctx context.Context, buyerID, propertyID uint, since time.Time) (*Lead, error)
	CountByAgent(ctx context.Context, agentID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}
