package buyer

import "errors"

var (
	ErrBuyerNotFound    = errors.New("buyer profile not found")
	ErrSavedNotFound    = errors.New("saved property not found")
	ErrAlreadyPurchased = errors.New("property already purchased")
	ErrInvalidChannel   = errors.New("invalid contact channel")
)
