package handlers

import (
	"context"

	"github.com/estatery/estatery/internal/application/payment/dto"
	"github.com/estatery/estatery/internal/application/payment/usecases"
)

type initializePaymentUseCase interface {
	Execute(ctx context.Context, cmd usecases.InitializePaymentCommand) (*dto.InitializeResultDTO, error)
}

type verifyPaymentUseCase interface {
	Execute(ctx context.Context, cmd usecases.VerifyPaymentCommand) (*dto.VerifyResultDTO, error)
}

type handleWebhookUseCase interface {
	Execute(ctx context.Context, cmd usecases.HandleWebhookCommand) error
}
