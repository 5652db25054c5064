package repository

import (
	"context"

	"github.com/nbekov/noted/internal/domain"
)

// Usecases depend on interfaces, not concrete implementations: the backing
// store can be swapped without touching the services, and tests inject fakes.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error

	// GetByUsername and GetByEmail return ErrNotFound on a miss. Whether
	// matching is case-sensitive is a property of the implementation.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
