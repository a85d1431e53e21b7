package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/estatery/estatery/internal/domain/user"
	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/goroutine"
	"github.com/estatery/estatery/internal/shared/id"
	"github.com/estatery/estatery/internal/shared/logger"
)

type RequestPasswordResetCommand struct {
	Email string
}

type RequestPasswordResetUseCase struct {
	userRepo user.Repository
	mailer   PasswordResetMailer
	ttl      time.Duration
	logger   logger.Interface
}

func NewRequestPasswordResetUseCase(
	userRepo user.Repository,
	mailer PasswordResetMailer,
	ttl time.Duration,
	logger logger.Interface,
) *RequestPasswordResetUseCase {
	return &RequestPasswordResetUseCase{
		userRepo: userRepo,
		mailer:   mailer,
		ttl:      ttl,
		logger:   logger,
	}
}

// Execute always succeeds for well-formed input so the response never tells
// whether an account exists. Only internal failures are returned.
func (uc *RequestPasswordResetUseCase) Execute(ctx context.Context, cmd RequestPasswordResetCommand) error {
	u, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil
		}
		uc.logger.Errorw("failed to look up user for password reset", "error", err)
		return err
	}

	plain, hash, err := id.NewToken()
	if err != nil {
		return err
	}
	u.IssueResetToken(hash, uc.ttl, biztime.NowUTC())
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to store reset token", "user_id", u.ID(), "error", err)
		return err
	}

	to, name := u.Email().String(), u.Name()
	goroutine.SafeGo(uc.logger, "password-reset-email", func() {
		if err := uc.mailer.SendPasswordResetEmail(to, name, plain); err != nil {
			uc.logger.Warnw("failed to send password reset email", "user_id", u.ID(), "error", err)
		}
	})

	uc.logger.Infow("password reset requested", "user_id", u.ID())
	return nil
}
