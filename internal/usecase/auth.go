package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nbekov/noted/internal/domain"
	"github.com/nbekov/noted/internal/hashing"
	"github.com/nbekov/noted/internal/metrics"
	"github.com/nbekov/noted/internal/repository"
)

// AuthUsecase implements registration, login and logout on top of the
// session manager and the credential hasher.
type AuthUsecase struct {
	users    repository.UserRepository
	sessions *SessionManager
	hasher   *hashing.Hasher
	logger   *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, sessions *SessionManager, hasher *hashing.Hasher, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		logger:   logger.With("component", "auth"),
	}
}

// Login verifies the credentials and issues a fresh session token. Unknown
// usernames and wrong passwords both fail with ErrInvalidCredentials; no
// token is created on failure.
func (u *AuthUsecase) Login(ctx context.Context, username, password string) (string, error) {
	if err := validateField("username", username, usernameMinLen, usernameMaxLen); err != nil {
		return "", err
	}

	user, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up user: %w", err)
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.sessions.IssueToken(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	u.logger.InfoContext(ctx, "user logged in", "username", user.Username)
	return token.Token, nil
}

// Logout revokes the session token.
func (u *AuthUsecase) Logout(ctx context.Context, tokenString string) error {
	if err := validateField("token", tokenString, 1, 128); err != nil {
		return err
	}

	user, err := u.sessions.ResolveToken(ctx, tokenString)
	if err == nil {
		u.logger.InfoContext(ctx, "user logged out", "username", user.Username)
	}

	return u.sessions.RevokeToken(ctx, tokenString)
}

// Register validates the triple, checks username and email uniqueness,
// stores the new user with a hashed password and logs them straight in.
func (u *AuthUsecase) Register(ctx context.Context, username, password, email string) (string, error) {
	if err := validateField("username", username, usernameMinLen, usernameMaxLen); err != nil {
		return "", err
	}
	if err := validateField("email", email, emailMinLen, emailMaxLen); err != nil {
		return "", err
	}
	if err := validateField("password", password, passwordMinLen, passwordMaxLen); err != nil {
		return "", err
	}

	if _, err := u.users.GetByUsername(ctx, username); err == nil {
		return "", &domain.ConflictError{Field: "username"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("check username: %w", err)
	}
	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return "", &domain.ConflictError{Field: "email"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("check email: %w", err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := u.users.Create(ctx, user); err != nil {
		// The unique index is the backstop for registrations racing past the
		// pre-checks above.
		if errors.Is(err, repository.ErrConflict) {
			return "", &domain.ConflictError{Field: "username"}
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	u.logger.InfoContext(ctx, "user registered", "username", username)

	return u.Login(ctx, username, password)
}

// TokenValid reports whether the token is resolvable and unexpired.
func (u *AuthUsecase) TokenValid(ctx context.Context, tokenString string) bool {
	return u.sessions.IsValid(ctx, tokenString)
}
