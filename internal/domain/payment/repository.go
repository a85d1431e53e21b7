package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	GetByReference(ctx context.Context, reference string) (*Payment, error)
	// GetByReferenceForUpdate locks the row inside the current transaction.
	GetByReferenceForUpdate(ctx context.Context, reference string) (*Payment, error)
	SumSuccessful(ctx context.Context) (int64, error)
}
