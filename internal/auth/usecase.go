package auth

import (
	"context"

	"github.com/fekuna/ecoscan/internal/auth/dto"
	"github.com/fekuna/ecoscan/internal/model"
)

// TokenSource hands out the bearer token for authenticated calls. When no usable
// token exists it redirects to the login page and reports false.
type TokenSource interface {
	RequireToken(ctx context.Context) (string, bool)
}

type UseCase interface {
	TokenSource

	Register(ctx context.Context, input *dto.RegisterInput) error
	Login(ctx context.Context, input *dto.LoginInput) (*model.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*model.User, error)
}
