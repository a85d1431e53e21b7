package errors

import (
	stderrors "errors"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
	ErrorTypePasswordNotSet     ErrorType = "password_not_set"
	ErrorTypeOAuthError         ErrorType = "oauth_error"
)

// AuthError represents authentication-specific errors with security context
type AuthError struct {
	*AppError
	// ShouldLog is false for expected failures such as a wrong password
	ShouldLog bool
	// SecurityEvent marks errors relevant to brute force tracking
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to reach the AppError
func (e *AuthError) Unwrap() error {
	return e.AppError
}

func newAuthError(t ErrorType, message string, shouldLog, securityEvent bool) *AuthError {
	return &AuthError{
		AppError:      &AppError{Type: t, Message: message, Code: http.StatusUnauthorized},
		ShouldLog:     shouldLog,
		SecurityEvent: securityEvent,
	}
}

// NewInvalidCredentialsError does not reveal whether the email or the password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return newAuthError(ErrorTypeInvalidCredentials, "Invalid email or password", false, true)
}

func NewTokenExpiredError() *AuthError {
	return newAuthError(ErrorTypeTokenExpired, "Token has expired", false, false)
}

func NewTokenInvalidError() *AuthError {
	return newAuthError(ErrorTypeTokenInvalid, "Invalid token", true, true)
}

// NewPasswordNotSetError is returned for accounts created through Google sign-in.
func NewPasswordNotSetError() *AuthError {
	e := newAuthError(ErrorTypePasswordNotSet, "Password login is not available for this account", false, false)
	e.Details = "sign in with Google or reset your password"
	return e
}

func NewOAuthError(details string) *AuthError {
	e := newAuthError(ErrorTypeOAuthError, "OAuth authentication failed", true, false)
	e.Details = details
	return e
}

// IsAuthError checks if the error is an AuthError
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}
