package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/authgate"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/pkg/validation"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, sess SessionStore, form dto.LoginForm) (*models.User, error)
	Register(ctx context.Context, form dto.RegisterForm) error
	Logout(ctx context.Context, gate *authgate.Gate) authgate.Decision
}

type authServiceImpl struct {
	api    Backend
	logger zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(api Backend, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		api:    api,
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

// Login validates the form, exchanges the credentials for a token, stores it and caches
// the current user. A failed user fetch does not undo the login: the user is fetched again
// on the next page that needs it.
func (s *authServiceImpl) Login(ctx context.Context, sess SessionStore, form dto.LoginForm) (*models.User, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}

	token, err := s.api.Login(ctx, backend.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		s.logger.Info().Err(err).Str("email", form.Email).Msg("Login failed")
		return nil, err
	}

	if err := sess.SetToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	user, err := s.api.GetCurrentUser(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Logged in but failed to fetch current user")
		return nil, nil
	}
	if user != nil {
		if err := sess.SetUser(ctx, user); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache current user")
		}
	}

	s.logger.Info().Str("userId", userID(user)).Msg("User logged in")
	return user, nil
}

// Register validates the form and creates the account. It does not log the user in.
func (s *authServiceImpl) Register(ctx context.Context, form dto.RegisterForm) error {
	if err := validation.Struct(form); err != nil {
		return err
	}

	err := s.api.Register(ctx, backend.RegisterRequest{
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
		DateOfBirth:     form.DateOfBirth,
		IsVolunteer:     form.IsVolunteer,
	})
	if err != nil {
		s.logger.Info().Err(err).Str("email", form.Email).Msg("Registration failed")
		return err
	}
	return nil
}

// Logout ends the session through the gate, which wipes it and redirects to the login page.
func (s *authServiceImpl) Logout(ctx context.Context, gate *authgate.Gate) authgate.Decision {
	d := gate.Logout(ctx)
	s.logger.Info().Msg("User logged out")
	return d
}
