package repository

import (
	"context"
	"time"

	"github.com/nbekov/noted/internal/domain"
)

type TokenRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Token, error)
	// GetAll is used by the expiry sweeper; it sees the same rows as live
	// traffic, never a private replica.
	GetAll(ctx context.Context) ([]*domain.Token, error)
	Create(ctx context.Context, token *domain.Token) (*domain.Token, error)
	Delete(ctx context.Context, id int64) error

	GetByToken(ctx context.Context, token string) (*domain.Token, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Token, error)
	GetStillValidByUserID(ctx context.Context, userID int64, now time.Time) ([]*domain.Token, error)
}
