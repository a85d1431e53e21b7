// Package common holds helpers shared by every application context.
package common

import (
	stderrors "errors"

	"github.com/estatery/estatery/internal/domain/agent"
	"github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/domain/payment"
	"github.com/estatery/estatery/internal/domain/property"
	"github.com/estatery/estatery/internal/domain/subscription"
	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/errors"
)

// TranslateError maps domain sentinels onto the API error taxonomy. Errors it
// does not recognise are returned untouched and end up as a 500.
func TranslateError(err error) error {
	if err == nil || errors.IsAppError(err) {
		return err
	}

	switch {
	case stderrors.Is(err, property.ErrPropertyNotFound):
		return errors.NewNotFoundError("property not found")
	case stderrors.Is(err, property.ErrPropertySold):
		return errors.NewConflictError("property is sold and can no longer be changed")
	case stderrors.Is(err, property.ErrNotPurchasable):
		return errors.NewConflictError("property is not available for purchase")
	case stderrors.Is(err, property.ErrRejectionReasonRequired):
		return errors.NewValidationError("rejection reason is required")
	case stderrors.Is(err, property.ErrInvalidStatusTransition),
		stderrors.Is(err, property.ErrInvalidProperty):
		return errors.NewValidationError(err.Error())

	case stderrors.Is(err, agent.ErrAgentNotFound):
		return errors.NewNotFoundError("agent not found")
	case stderrors.Is(err, agent.ErrAgentSuspended):
		return errors.NewForbiddenError("agent account is suspended")

	case stderrors.Is(err, buyer.ErrBuyerNotFound):
		return errors.NewNotFoundError("buyer profile not found")
	case stderrors.Is(err, buyer.ErrSavedNotFound):
		return errors.NewNotFoundError("property is not in saved list")
	case stderrors.Is(err, buyer.ErrAlreadyPurchased):
		return errors.NewConflictError("property already purchased")
	case stderrors.Is(err, buyer.ErrInvalidChannel):
		return errors.NewValidationError(err.Error())

	case stderrors.Is(err, subscription.ErrSubscriptionNotFound):
		return errors.NewNotFoundError("subscription not found")
	case stderrors.Is(err, subscription.ErrInvalidPlan),
		stderrors.Is(err, subscription.ErrInvalidExpiry):
		return errors.NewValidationError(err.Error())

	case stderrors.Is(err, payment.ErrPaymentNotFound):
		return errors.NewNotFoundError("payment not found")
	case stderrors.Is(err, payment.ErrAmountMismatch):
		return errors.NewConflictError("paid amount does not match the plan price")
	case stderrors.Is(err, payment.ErrAlreadyFinal):
		return errors.NewConflictError("payment is already finalised")

	case stderrors.Is(err, user.ErrUserNotFound):
		return errors.NewNotFoundError("user not found")
	case stderrors.Is(err, user.ErrEmailTaken):
		return errors.NewConflictError("email already registered")
	case stderrors.Is(err, user.ErrInvalidUser):
		return errors.NewValidationError(err.Error())
	case stderrors.Is(err, user.ErrResetTokenInvalid):
		return errors.NewBadRequestError("password reset link is invalid or has expired")
	case stderrors.Is(err, user.ErrRoleNotAssignable):
		return errors.NewForbiddenError("role cannot be self-assigned")
	}
	return err
}
