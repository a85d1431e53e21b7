package payment

import "errors"

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrAmountMismatch  = errors.New("paid amount does not match")
	ErrAlreadyFinal    = errors.New("payment already finalised")
)
