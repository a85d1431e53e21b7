package usecases

import (
	"context"

	paystack "github.com/estatery/estatery/internal/infrastructure/payment"
)

type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Gateway is the slice of the Paystack client the payment flows need.
type Gateway interface {
	Configured() bool
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResult, error)
	Verify(ctx context.Context, reference string) (*paystack.Transaction, error)
	VerifySignature(body []byte, signature string) bool
}
