package auth

import (
	"context"

	"github.com/fekuna/ecoscan/internal/model"
)

// Repository is the remote auth API.
type Repository interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Logout(ctx context.Context, token string) error
}

// Store persists the client session (token and user record) between runs.
// Token returns "" when nothing is stored.
type Store interface {
	Save(ctx context.Context, token string, user *model.User) error
	Token(ctx context.Context) (string, error)
	User(ctx context.Context) (*model.User, error)
	Clear(ctx context.Context) error
}
