package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/ecoscan/internal/apperror"
	"github.com/fekuna/ecoscan/internal/auth"
	"github.com/fekuna/ecoscan/internal/auth/dto"
	"github.com/fekuna/ecoscan/internal/logger"
	"github.com/fekuna/ecoscan/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	msgRegisterFailed = "Registration failed. Please try again."
	msgLoginFailed    = "Login failed. Please try again."
	msgUnreachable    = "An error occurred. Please try again later."
)

// UserError carries the message shown to the user next to the form.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }
func (e *UserError) Unwrap() error { return e.Err }

type authUseCase struct {
	repo     auth.Repository
	store    auth.Store
	nav      auth.Navigator
	validate *validator.Validate
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewAuthUseCase(repo auth.Repository, store auth.Store, nav auth.Navigator, log logger.ZapLogger) auth.UseCase {
	return &authUseCase{
		repo:     repo,
		store:    store,
		nav:      nav,
		validate: validator.New(),
		logger:   log,
		now:      time.Now,
	}
}

func (uc *authUseCase) Register(ctx context.Context, input *dto.RegisterInput) error {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	if err := uc.validate.Struct(input); err != nil {
		return validationError(err, registerMessages)
	}

	if err := uc.repo.Register(ctx, input.Username, input.Email, input.Password); err != nil {
		uc.logger.Warn("registration failed", zap.String("email", input.Email), zap.Error(err))
		return serverError(err, msgRegisterFailed)
	}

	uc.logger.Info("registered", zap.String("email", input.Email))
	uc.nav.Redirect(auth.PageLogin)
	return nil
}

func (uc *authUseCase) Login(ctx context.Context, input *dto.LoginInput) (*model.User, error) {
	input.Email = strings.TrimSpace(input.Email)

	if err := uc.validate.Struct(input); err != nil {
		return nil, validationError(err, loginMessages)
	}

	token, user, err := uc.repo.Login(ctx, input.Email, input.Password)
	if err != nil {
		uc.logger.Warn("login failed", zap.String("email", input.Email), zap.Error(err))
		return nil, serverError(err, msgLoginFailed)
	}
	if token == "" {
		return nil, &UserError{Message: msgLoginFailed, Err: apperror.ErrAuthMissing}
	}

	if err := uc.store.Save(ctx, token, user); err != nil {
		return nil, err
	}

	uc.nav.Redirect(auth.PageHome)
	return user, nil
}

// Logout tells the server on a best-effort basis, then always clears local state.
func (uc *authUseCase) Logout(ctx context.Context) error {
	token, err := uc.store.Token(ctx)
	if err != nil {
		uc.logger.Warn("read token for logout", zap.Error(err))
	}
	if token != "" {
		if err := uc.repo.Logout(ctx, token); err != nil {
			uc.logger.Debug("server logout ignored", zap.Error(err))
		}
	}

	if err := uc.store.Clear(ctx); err != nil {
		return err
	}
	uc.nav.Redirect(auth.PageLogin)
	return nil
}

func (uc *authUseCase) CurrentUser(ctx context.Context) (*model.User, error) {
	return uc.store.User(ctx)
}

func (uc *authUseCase) RequireToken(ctx context.Context) (string, bool) {
	token, err := uc.store.Token(ctx)
	if err != nil {
		uc.logger.Error("read token", zap.Error(err))
		token = ""
	}

	if token != "" && tokenExpired(token, uc.now()) {
		uc.logger.Info("stored token expired")
		if err := uc.store.Clear(ctx); err != nil {
			uc.logger.Warn("clear expired session", zap.Error(err))
		}
		token = ""
	}

	if token == "" {
		uc.nav.Redirect(auth.PageLogin)
		return "", false
	}
	return token, true
}

// tokenExpired reports whether token is a JWT whose exp has passed. Opaque
// tokens and JWTs without exp never expire on the client side.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}

var registerMessages = map[string]string{
	"Username": "Please enter a username.",
	"Email":    "Please enter a valid email address.",
	"Phone":    "Phone number must be exactly 10 digits.",
	"Password": "Please enter a password.",
	"Confirm":  "Passwords do not match.",
}

var loginMessages = map[string]string{
	"Email":    "Please enter both email and password.",
	"Password": "Please enter both email and password.",
}

func validationError(err error, messages map[string]string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := messages[verrs[0].Field()]; ok {
			return &UserError{Message: msg, Err: ErrInvalidInput}
		}
	}
	return &UserError{Message: err.Error(), Err: ErrInvalidInput}
}

func serverError(err error, fallback string) error {
	var se *apperror.StatusError
	if errors.As(err, &se) {
		if se.Message != "" {
			return &UserError{Message: se.Message, Err: err}
		}
		return &UserError{Message: fallback, Err: err}
	}
	return &UserError{Message: msgUnreachable, Err: err}
}
