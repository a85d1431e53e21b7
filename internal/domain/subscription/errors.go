package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidPlan          = errors.New("invalid plan")
	ErrInvalidExpiry        = errors.New("invalid expiry")
)
