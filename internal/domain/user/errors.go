package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidUser       = errors.New("invalid user")
	ErrResetTokenInvalid = errors.New("password reset token is invalid or expired")
	ErrPasswordNotSet    = errors.New("password not set")
	ErrRoleNotAssignable = errors.New("role cannot be self-assigned")
)
