package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nbekov/noted/internal/domain"
	"github.com/nbekov/noted/internal/repository"
)

// DefaultTokenTTL is the fixed validity window of a session token. It is
// set once at issue time and never extended.
const DefaultTokenTTL = 12 * time.Hour

// SessionManager issues, resolves and revokes opaque bearer session tokens.
//
// Token lifecycle: Issued -> Valid -> Expired (time passing, removed by the
// sweeper) or Revoked (explicit logout, immediate deletion). ResolveToken is
// a read-only check and never deletes expired rows itself.
type SessionManager struct {
	tokens repository.TokenRepository
	users  repository.UserRepository
	ttl    time.Duration
	now    func() time.Time
}

type SessionOption func(*SessionManager)

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) SessionOption {
	return func(m *SessionManager) { m.now = now }
}

func NewSessionManager(tokens repository.TokenRepository, users repository.UserRepository, ttl time.Duration, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		tokens: tokens,
		users:  users,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IssueToken persists and returns a fresh token for the user. The token
// string is 256 bits from crypto/rand; collisions are treated as negligible
// and would surface as a unique-constraint error from the repository.
func (m *SessionManager) IssueToken(ctx context.Context, userID int64) (*domain.Token, error) {
	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	token := &domain.Token{
		UserID:    userID,
		Token:     hex.EncodeToString(raw),
		ExpiresAt: m.now().Add(m.ttl),
	}

	created, err := m.tokens.Create(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return created, nil
}

// ResolveToken maps a token string to its owning user. It fails with an
// AuthError when the token is unknown or expired.
func (m *SessionManager) ResolveToken(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := m.tokens.GetByToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &domain.AuthError{Reason: domain.AuthTokenNotFound}
		}
		return nil, fmt.Errorf("look up token: %w", err)
	}

	if token.Expired(m.now()) {
		return nil, &domain.AuthError{Reason: domain.AuthTokenExpired}
	}

	user, err := m.users.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("look up token owner: %w", err)
	}
	return user, nil
}

// RevokeToken deletes the token. Revoking an unknown token fails with an
// AuthError and is not retried.
func (m *SessionManager) RevokeToken(ctx context.Context, tokenString string) error {
	token, err := m.tokens.GetByToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.AuthError{Reason: domain.AuthTokenNotFound}
		}
		return fmt.Errorf("look up token: %w", err)
	}

	if err := m.tokens.Delete(ctx, token.ID); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// IsValid reports whether the token resolves to a user and has not expired.
// It never returns an error; storage failures count as invalid.
func (m *SessionManager) IsValid(ctx context.Context, tokenString string) bool {
	token, err := m.tokens.GetByToken(ctx, tokenString)
	if err != nil {
		return false
	}
	return !token.Expired(m.now())
}
