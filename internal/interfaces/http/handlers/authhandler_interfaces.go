package handlers

import (
	"context"

	"github.com/estatery/estatery/internal/application/user/dto"
	"github.com/estatery/estatery/internal/application/user/usecases"
)

// Use case interfaces for AuthHandler - enables unit testing with mocks.

type registerUseCase interface {
	Execute(ctx context.Context, cmd usecases.RegisterWithPasswordCommand) (*dto.AuthResultDTO, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginWithPasswordCommand) (*dto.AuthResultDTO, error)
}

type googleLoginUseCase interface {
	Execute(ctx context.Context, cmd usecases.GoogleLoginCommand) (*dto.AuthResultDTO, error)
}

type requestPasswordResetUseCase interface {
	Execute(ctx context.Context, cmd usecases.RequestPasswordResetCommand) error
}

type resetPasswordUseCase interface {
	Execute(ctx context.Context, cmd usecases.ResetPasswordCommand) error
}

type changePasswordUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangePasswordCommand) error
}

type getCurrentUserUseCase interface {
	Execute(ctx context.Context, userID uint) (*dto.MeDTO, error)
}
