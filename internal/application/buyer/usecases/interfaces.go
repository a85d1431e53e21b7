package usecases

import (
	"context"

	"github.com/estatery/estatery/internal/infrastructure/email"
)

type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AgentNotifier tells agents about buyer activity on their listings.
type AgentNotifier interface {
	SendNewLeadEmail(to, name string, n email.LeadNotice) error
	SendPurchaseEmail(to, name string, n email.PurchaseNotice) error
}
