// Package service implements the application's business logic.
package service

import (
	"context"

	"inkwell/internal/credentials"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/session"
	"inkwell/internal/validation"
)

type AuthService struct {
	userRepo repository.UserRepository
	hasher   *credentials.Hasher
	sessions *session.Manager
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewAuthService(userRepo repository.UserRepository, hasher *credentials.Hasher, sessions *session.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		sessions: sessions,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", models.NewDuplicateError("User", "email")
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
	}
	// Create maps a concurrent duplicate insert to the same error as
	// the pre-check above.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Start(ctx, user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	middleware.SessionsStarted.WithLabelValues("register").Inc()

	return user, token, nil
}

// Login verifies credentials and starts a session. An unknown email and a
// wrong password both produce the same error so accounts cannot be
// enumerated through the login form.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !s.hasher.Verify(in.Password, user.Password) {
		middleware.AuthFailures.WithLabelValues("bad_credentials").Inc()
		return nil, "", models.NewAuthRequiredError("Invalid email or password")
	}

	token, err := s.sessions.Start(ctx, user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	middleware.SessionsStarted.WithLabelValues("login").Inc()

	return user, token, nil
}

// Logout ends the session for the given token. Unknown and empty tokens
// are not errors; logging out twice is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.End(ctx, token); err != nil {
		return models.NewInternalError(err)
	}
	middleware.SessionsEnded.Inc()
	return nil
}

// Authenticate resolves a session token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.sessions.UserID(ctx, token)
	if err != nil {
		middleware.AuthFailures.WithLabelValues("invalid_session").Inc()
		return nil, models.NewAuthRequiredError("Authentication required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		middleware.AuthFailures.WithLabelValues("unknown_user").Inc()
		return nil, models.NewAuthRequiredError("Authentication required")
	}
	return user, nil
}
