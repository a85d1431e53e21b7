package usecases

import (
	"context"
	"fmt"

	"github.com/estatery/estatery/internal/application/common"
	"github.com/estatery/estatery/internal/application/payment/dto"
	subusecases "github.com/estatery/estatery/internal/application/subscription/usecases"
	"github.com/estatery/estatery/internal/domain/payment"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/domain/user"
	paystack "github.com/estatery/estatery/internal/infrastructure/payment"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/config"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/id"
	"github.com/estatery/estatery/internal/shared/logger"
)

const referencePrefix = "EST"

type InitializePaymentCommand struct {
	AgentID uint
	UserID  uint
	Plan    string
}

type InitializePaymentUseCase struct {
	paymentRepo payment.Repository
	userRepo    user.Repository
	gateway     Gateway
	plans       config.SubscriptionConfig
	callbackURL string
	logger      logger.Interface
}

func NewInitializePaymentUseCase(
	paymentRepo payment.Repository,
	userRepo user.Repository,
	gateway Gateway,
	plans config.SubscriptionConfig,
	callbackURL string,
	logger logger.Interface,
) *InitializePaymentUseCase {
	return &InitializePaymentUseCase{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		plans:       plans,
		callbackURL: callbackURL,
		logger:      logger,
	}
}

// Execute stores a PENDING payment and opens the matching Paystack checkout.
func (uc *InitializePaymentUseCase) Execute(ctx context.Context, cmd InitializePaymentCommand) (*dto.InitializeResultDTO, error) {
	plan, err := subscription.ParsePlan(cmd.Plan)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !plan.IsPaid() {
		return nil, errors.NewValidationError(fmt.Sprintf("plan %s cannot be purchased", plan))
	}
	if !uc.gateway.Configured() {
		return nil, errors.NewBadRequestError("payments are not configured")
	}

	amount := subusecases.PlanPrice(uc.plans, plan)
	if amount <= 0 {
		uc.logger.Errorw("plan has no price configured", "plan", plan)
		return nil, errors.NewInternalError("plan price is not configured")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	now := biztime.NowUTC()
	p, err := payment.NewPayment(id.NewReference(referencePrefix), cmd.AgentID, plan, amount, uc.plans.Currency, now)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if err := uc.paymentRepo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to create payment", "agent_id", cmd.AgentID, "error", err)
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	res, err := uc.gateway.Initialize(ctx, paystack.InitializeRequest{
		Email:       u.Email().String(),
		Amount:      amount,
		Currency:    uc.plans.Currency,
		Reference:   p.Reference(),
		CallbackURL: uc.callbackURL,
		Metadata: map[string]any{
			"agent_id": cmd.AgentID,
			"plan":     plan.String(),
		},
	})
	if err != nil {
		uc.logger.Errorw("paystack initialize failed", "reference", p.Reference(), "error", err)
		if markErr := p.MarkAsFailed(err.Error(), nil, biztime.NowUTC()); markErr == nil {
			if updateErr := uc.paymentRepo.Update(ctx, p); updateErr != nil {
				uc.logger.Warnw("failed to record initialize failure", "reference", p.Reference(), "error", updateErr)
			}
		}
		return nil, errors.NewInternalError("payment gateway is unavailable")
	}

	p.SetAuthorizationURL(res.AuthorizationURL, biztime.NowUTC())
	if err := uc.paymentRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to store authorization url: %w", err)
	}

	uc.logger.Infow("payment initialized", "reference", p.Reference(), "agent_id", cmd.AgentID, "plan", plan, "amount", amount)
	return &dto.InitializeResultDTO{
		Reference:        p.Reference(),
		AuthorizationURL: res.AuthorizationURL,
		AccessCode:       res.AccessCode,
		Plan:             plan.String(),
		Amount:           amount,
		Currency:         p.Currency(),
	}, nil
}
