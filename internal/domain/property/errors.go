package property

import (
	"errors"
	"fmt"

	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
)

var (
	ErrPropertyNotFound        = errors.New("property not found")
	ErrInvalidProperty         = errors.New("invalid property")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrPropertySold            = errors.New("property is sold")
	ErrNotPurchasable          = errors.New("property is not available for purchase")
)

func ErrInvalidTransition(from, to vo.Status) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidProperty, fmt.Sprintf(format, args...))
}
