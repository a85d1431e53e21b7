package usecases

import (
	"context"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/payment/dto"
	subdto "github.com/estatery/estatery/internal/application/subscription/dto"
	"github.com/estatery/estatery/internal/domain/payment"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type VerifyPaymentCommand struct {
	AgentID   uint
	Reference string
}

type VerifyPaymentUseCase struct {
	paymentRepo payment.Repository
	gateway     Gateway
	activator   *ActivatePaymentUseCase
	logger      logger.Interface
}

func NewVerifyPaymentUseCase(paymentRepo payment.Repository, gateway Gateway, activator *ActivatePaymentUseCase, logger logger.Interface) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{paymentRepo: paymentRepo, gateway: gateway, activator: activator, logger: logger}
}

// Execute asks Paystack for the charge state and activates the plan on
// success. Payments belonging to another agent are reported as missing.
func (uc *VerifyPaymentUseCase) Execute(ctx context.Context, cmd VerifyPaymentCommand) (*dto.VerifyResultDTO, error) {
	p, err := uc.paymentRepo.GetByReference(ctx, cmd.Reference)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if p.AgentID() != cmd.AgentID {
		return nil, errors.NewNotFoundError("payment not found")
	}
	if p.Status().IsFinal() {
		return uc.result(ctx, p, nil)
	}

	tx, err := uc.gateway.Verify(ctx, p.Reference())
	if err != nil {
		uc.logger.Errorw("paystack verify failed", "reference", p.Reference(), "error", err)
		return nil, errors.NewInternalError("payment gateway is unavailable")
	}

	switch {
	case tx.Succeeded():
		updated, sub, err := uc.activator.Execute(ctx, tx)
		if err != nil {
			return nil, common.TranslateError(err)
		}
		return uc.result(ctx, updated, sub)
	case tx.Status == "failed" || tx.Status == "reversed":
		updated, err := uc.activator.MarkFailed(ctx, tx)
		if err != nil {
			return nil, err
		}
		return uc.result(ctx, updated, nil)
	}

	uc.logger.Infow("payment still pending", "reference", p.Reference(), "gateway_status", tx.Status)
	return uc.result(ctx, p, nil)
}

func (uc *VerifyPaymentUseCase) result(ctx context.Context, p *payment.Payment, sub *subscription.Subscription) (*dto.VerifyResultDTO, error) {
	out := &dto.VerifyResultDTO{Payment: dto.ToPaymentDTO(p)}
	if sub == nil && p.Status() == payment.StatusSuccess {
		current, err := uc.activator.currentSubscription(ctx, p.AgentID())
		if err != nil {
			return nil, err
		}
		sub = current
	}
	if sub != nil {
		s := subdto.ToSubscriptionDTO(sub, biztime.NowUTC())
		out.Subscription = &s
	}
	return out, nil
}
