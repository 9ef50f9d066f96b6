package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wellhouse/stockroom/internal/auth"
	"github.com/wellhouse/stockroom/internal/models"
)

// AuthService manages the user account lifecycle and publishes sign-in
// state through the identity signal the synchronization cores listen on.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         auth.UserStorage
	signal        *auth.Signal
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users auth.UserStorage, signal *auth.Signal, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		signal:        signal,
		logger:        logger,
	}
}

// SignUp creates a new user account, signs them in and returns a session
// token.
func (s *AuthService) SignUp(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	s.logger.Info("Sign-up request", "email", email)

	if email == "" || displayName == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		s.logger.Error("Sign-up failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.signal.Set(user)
	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// LogIn authenticates a user, signs them in and returns a session token.
func (s *AuthService) LogIn(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	s.logger.Info("Login request", "email", email)

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Error("Login failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.signal.Set(user)
	s.logger.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}

// Resume restores a session from a previously issued token.
func (s *AuthService) Resume(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		s.logger.Warn("Session resume rejected", "error", err)
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Error("Session resume failed", "user_id", claims.UserID, "error", err)
		return nil, err
	}

	s.signal.Set(user)
	s.logger.Info("Session resumed", "user_id", user.ID)
	return user, nil
}

// LogOut ends the session. The synchronization cores fall back to local
// storage; remote data stays put for the next sign-in.
func (s *AuthService) LogOut() {
	if user := s.signal.Current(); user != nil {
		s.logger.Info("User logged out", "user_id", user.ID)
	}
	s.signal.Set(nil)
}

// UpdateProfile changes the signed-in user's display name and photo URL.
// Empty fields are left untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, displayName, photoURL string) (*models.User, error) {
	user := s.signal.Current()
	if user == nil {
		return nil, auth.ErrUserNotFound
	}

	updated := *user
	if displayName != "" {
		updated.DisplayName = displayName
	}
	if photoURL != "" {
		updated.PhotoURL = photoURL
	}

	if err := s.users.UpdateUser(ctx, &updated); err != nil {
		s.logger.Error("Profile update failed", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.signal.Set(&updated)
	s.logger.Info("Profile updated", "user_id", updated.ID)
	return &updated, nil
}

// CurrentUser returns the signed-in user, or nil for anonymous sessions.
func (s *AuthService) CurrentUser() *models.User {
	return s.signal.Current()
}
