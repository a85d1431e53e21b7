package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/estatery/estatery/internal/domain/payment"
	"github.com/estatery/estatery/internal/domain/subscription"
	paystack "github.com/estatery/estatery/internal/infrastructure/payment"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/logger"
)

// ActivatePaymentUseCase turns a successful gateway charge into subscription
// time. It is shared by the verify endpoint and the webhook, and running it
// twice for one reference leaves the subscription unchanged.
type ActivatePaymentUseCase struct {
	paymentRepo      payment.Repository
	subscriptionRepo subscription.Repository
	txManager        TransactionManager
	period           time.Duration
	logger           logger.Interface
}

func NewActivatePaymentUseCase(
	paymentRepo payment.Repository,
	subscriptionRepo subscription.Repository,
	txManager TransactionManager,
	period time.Duration,
	logger logger.Interface,
) *ActivatePaymentUseCase {
	return &ActivatePaymentUseCase{
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		period:           period,
		logger:           logger,
	}
}

// Execute returns ErrAmountMismatch after recording the payment as FAILED
// when the charged amount differs from the plan price.
func (uc *ActivatePaymentUseCase) Execute(ctx context.Context, tx *paystack.Transaction) (*payment.Payment, *subscription.Subscription, error) {
	var (
		p        *payment.Payment
		sub      *subscription.Subscription
		mismatch error
	)

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = uc.paymentRepo.GetByReferenceForUpdate(ctx, tx.Reference)
		if err != nil {
			return err
		}

		now := biztime.NowUTC()
		paidAt := now
		if tx.PaidAt != nil {
			paidAt = tx.PaidAt.UTC()
		}

		applied, err := p.MarkAsPaid(tx.Amount, tx.Currency, paidAt, tx.Raw)
		switch {
		case stderrors.Is(err, payment.ErrAmountMismatch):
			mismatch = err
			if err := p.MarkAsFailed(err.Error(), tx.Raw, now); err != nil {
				return err
			}
			return uc.paymentRepo.Update(ctx, p)
		case err != nil:
			return err
		case !applied:
			sub, err = uc.currentSubscription(ctx, p.AgentID())
			return err
		}

		if err := uc.paymentRepo.Update(ctx, p); err != nil {
			return err
		}

		sub, err = uc.currentSubscription(ctx, p.AgentID())
		if err != nil {
			return err
		}
		if sub == nil {
			if sub, err = subscription.NewSubscription(p.AgentID(), subscription.PlanFree, nil, now); err != nil {
				return err
			}
		}
		if err := sub.Extend(p.Plan(), uc.period, now); err != nil {
			return err
		}
		return uc.subscriptionRepo.Save(ctx, sub)
	})
	if err != nil {
		uc.logger.Errorw("failed to activate payment", "reference", tx.Reference, "error", err)
		return nil, nil, err
	}
	if mismatch != nil {
		uc.logger.Warnw("payment amount mismatch", "reference", tx.Reference, "amount", tx.Amount, "currency", tx.Currency)
		return p, nil, mismatch
	}

	if sub != nil {
		uc.logger.Infow("payment activated", "reference", p.Reference(), "agent_id", p.AgentID(), "plan", p.Plan(), "expires_at", sub.ExpiresAt())
	}
	return p, sub, nil
}

// MarkFailed records a declined charge. Final payments are left alone.
func (uc *ActivatePaymentUseCase) MarkFailed(ctx context.Context, tx *paystack.Transaction) (*payment.Payment, error) {
	var p *payment.Payment
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = uc.paymentRepo.GetByReferenceForUpdate(ctx, tx.Reference)
		if err != nil {
			return err
		}
		if p.Status().IsFinal() {
			return nil
		}
		reason := tx.GatewayResponse
		if reason == "" {
			reason = tx.Status
		}
		if err := p.MarkAsFailed(reason, tx.Raw, biztime.NowUTC()); err != nil {
			return err
		}
		return uc.paymentRepo.Update(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark payment failed: %w", err)
	}
	return p, nil
}

func (uc *ActivatePaymentUseCase) currentSubscription(ctx context.Context, agentID uint) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByAgentID(ctx, agentID)
	if stderrors.Is(err, subscription.ErrSubscriptionNotFound) {
		return nil, nil
	}
	return sub, err
}
