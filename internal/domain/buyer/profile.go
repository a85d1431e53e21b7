package buyer

import (
	"fmt"
	"strings"
	"time"
)

// Profile is the buyer side of a user.
type Profile struct {
	id                uint
	userID            uint
	phone             string
	preferredLocation string
	budgetMin         *int64
	budgetMax         *int64
	createdAt         time.Time
	updatedAt         time.Time
}

func NewProfile(userID uint, now time.Time) (*Profile, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &Profile{userID: userID, createdAt: now, updatedAt: now}, nil
}

func ReconstructProfile(
	id, userID uint,
	phone, preferredLocation string,
	budgetMin, budgetMax *int64,
	createdAt, updatedAt time.Time,
) (*Profile, error) {
	if id == 0 {
		return nil, fmt.Errorf("buyer profile ID cannot be zero")
	}
	return &Profile{
		id:                id,
		userID:            userID,
		phone:             phone,
		preferredLocation: preferredLocation,
		budgetMin:         budgetMin,
		budgetMax:         budgetMax,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

type Patch struct {
	Phone             *string
	PreferredLocation *string
	BudgetMin         *int64
	BudgetMax         *int64
}

func (p *Profile) Apply(patch Patch, now time.Time) error {
	lo, hi := p.budgetMin, p.budgetMax
	if patch.BudgetMin != nil {
		lo = patch.BudgetMin
	}
	if patch.BudgetMax != nil {
		hi = patch.BudgetMax
	}
	if lo != nil && hi != nil && *lo > *hi {
		return fmt.Errorf("budget_min must not exceed budget_max")
	}

	if patch.Phone != nil {
		p.phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.PreferredLocation != nil {
		p.preferredLocation = strings.TrimSpace(*patch.PreferredLocation)
	}
	p.budgetMin, p.budgetMax = lo, hi
	p.updatedAt = now
	return nil
}

func (p *Profile) ID() uint {
	return p.id
}

func (p *Profile) UserID() uint {
	return p.userID
}

func (p *Profile) Phone() string {
	return p.phone
}

func (p *Profile) PreferredLocation() string {
	return p.preferredLocation
}

func (p *Profile) BudgetMin() *int64 {
	return p.budgetMin
}

func (p *Profile) BudgetMax() *int64 {
	return p.budgetMax
}

func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Profile) SetID(id uint) {
	p.id = id
}
