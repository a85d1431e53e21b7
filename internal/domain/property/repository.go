package property

import (
	"context"

	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
)

// Filter narrows property queries. Zero values mean "any".
type Filter struct {
	// IDs restricts the result to the given properties when not empty.
	IDs             []uint
	Statuses        []vo.Status
	AgentID         *uint
	Location        string
	Category        string
	TransactionType vo.TransactionType
	Furnishing      vo.Furnishing
	MinPrice        *int64
	MaxPrice        *int64
	MinBedrooms     *int
	// ExcludeSuspendedAgents drops listings whose owning agent is suspended.
	ExcludeSuspendedAgents bool
	Page                   int
	PageSize               int
}

type Repository interface {
	Create(ctx context.Context, p *Property) error
	// Update persists content, status and, when replaceImages is set, the full image set.
	Update(ctx context.Context, p *Property, replaceImages bool) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Property, error)
	// List returns matches in id order; page fields apply only when PageSize > 0.
	List(ctx context.Context, filter Filter) ([]*Property, int64, error)
	// MarkSoldIfApproved flips APPROVED to SOLD in one conditional statement and
	// reports whether this call performed the change.
	MarkSoldIfApproved(ctx context.Context, id uint) (bool, error)
	CountByStatus(ctx context.Context, agentID *uint) (map[vo.Status]int64, error)
}
