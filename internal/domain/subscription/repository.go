package subscription

import "context"

type Repository interface {
	// Save inserts or updates the subscription of its agent profile.
	Save(ctx context.Context, s *Subscription) error
	GetByAgentID(ctx context.Context, agentID uint) (*Subscription, error)
	// GetByAgentIDs returns the subscriptions keyed by agent profile id.
	GetByAgentIDs(ctx context.Context, agentIDs []uint) (map[uint]*Subscription, error)
	List(ctx context.Context, page, pageSize int) ([]*Subscription, int64, error)
}
