package usecases

import (
	"context"
	stderrors "errors"

	"github.com/estatery/estatery/internal/domain/payment"
	paystack "github.com/estatery/estatery/internal/infrastructure/payment"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
)

type HandleWebhookCommand struct {
	Body      []byte
	Signature string
}

type HandleWebhookUseCase struct {
	gateway   Gateway
	activator *ActivatePaymentUseCase
	logger    logger.Interface
}

func NewHandleWebhookUseCase(gateway Gateway, activator *ActivatePaymentUseCase, logger logger.Interface) *HandleWebhookUseCase {
	return &HandleWebhookUseCase{gateway: gateway, activator: activator, logger: logger}
}

// Execute authenticates and applies a Paystack event. Events that cannot be
// acted on are acknowledged so the gateway stops retrying them.
func (uc *HandleWebhookUseCase) Execute(ctx context.Context, cmd HandleWebhookCommand) error {
	if !uc.gateway.VerifySignature(cmd.Body, cmd.Signature) {
		uc.logger.Warnw("invalid paystack webhook signature")
		return errors.NewUnauthorizedError("invalid webhook signature")
	}

	ev, err := paystack.ParseWebhook(cmd.Body)
	if err != nil {
		return errors.NewBadRequestError("invalid webhook payload", err.Error())
	}
	if ev.Event != paystack.EventChargeSuccess || !ev.Data.Succeeded() {
		uc.logger.Infow("paystack event ignored", "event", ev.Event, "reference", ev.Data.Reference)
		return nil
	}

	_, _, err = uc.activator.Execute(ctx, &ev.Data)
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, payment.ErrPaymentNotFound):
		uc.logger.Warnw("webhook for unknown payment", "reference", ev.Data.Reference)
		return nil
	case stderrors.Is(err, payment.ErrAmountMismatch), stderrors.Is(err, payment.ErrAlreadyFinal):
		uc.logger.Warnw("webhook could not activate payment", "reference", ev.Data.Reference, "error", err)
		return nil
	}
	return err
}
