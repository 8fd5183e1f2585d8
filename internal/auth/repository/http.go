package repository

import (
	"context"
	"net/http"

	"github.com/fekuna/ecoscan/internal/api"
	"github.com/fekuna/ecoscan/internal/model"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *struct {
		ID       api.FlexID `json:"id"`
		Username string     `json:"username"`
		Email    string     `json:"email"`
	} `json:"user"`
}

type HTTPRepository struct {
	client *api.Client
}

func NewHTTPRepository(client *api.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) Register(ctx context.Context, username, email, password string) error {
	req := registerRequest{Username: username, Email: email, Password: password}
	return r.client.Do(ctx, http.MethodPost, "/api/register", "", req, nil)
}

func (r *HTTPRepository) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	var resp loginResponse
	if err := r.client.Do(ctx, http.MethodPost, "/api/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", nil, err
	}

	var user *model.User
	if resp.User != nil {
		user = &model.User{
			ID:       resp.User.ID.String(),
			Username: resp.User.Username,
			Email:    resp.User.Email,
		}
	}
	return resp.Token, user, nil
}

func (r *HTTPRepository) Logout(ctx context.Context, token string) error {
	return r.client.Do(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}
