package repository

import (
	"context"

	"github.com/nbekov/noted/internal/domain"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	// Delete removes the category and, at the storage layer, every note in it.
	Delete(ctx context.Context, id int64) error

	GetByUserID(ctx context.Context, userID int64) ([]*domain.Category, error)
}

type NoteRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Note, error)
	GetAll(ctx context.Context) ([]*domain.Note, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id int64) error

	GetByCategoryID(ctx context.Context, categoryID int64) ([]*domain.Note, error)
}
