package usecases

import (
	"context"

	"github.com/estatery/estatery/internal/infrastructure/auth"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type GoogleAuthenticator interface {
	Configured() bool
	Authenticate(ctx context.Context, code, accessToken string) (*auth.OAuthUserInfo, error)
}

type PasswordResetMailer interface {
	SendPasswordResetEmail(to, name, token string) error
}

type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
