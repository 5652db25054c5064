package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nbekov/noted/internal/domain"
	"github.com/nbekov/noted/internal/hashing"
	"github.com/nbekov/noted/internal/repository"
)

// DataService is the ownership-scoped gateway to categories, notes and the
// user profile. Every operation resolves the caller from its token first,
// then checks that the target entity belongs to the caller before touching
// storage. A missing entity and someone else's entity are reported
// identically as NotFoundError.
type DataService struct {
	sessions   *SessionManager
	categories repository.CategoryRepository
	notes      repository.NoteRepository
	users      repository.UserRepository
	tokens     repository.TokenRepository
	hasher     *hashing.Hasher
	now        func() time.Time
}

type DataOption func(*DataService)

// WithDataNow overrides the clock, for tests.
func WithDataNow(now func() time.Time) DataOption {
	return func(s *DataService) { s.now = now }
}

func NewDataService(
	sessions *SessionManager,
	categories repository.CategoryRepository,
	notes repository.NoteRepository,
	users repository.UserRepository,
	tokens repository.TokenRepository,
	hasher *hashing.Hasher,
	opts ...DataOption,
) *DataService {
	s := &DataService{
		sessions:   sessions,
		categories: categories,
		notes:      notes,
		users:      users,
		tokens:     tokens,
		hasher:     hasher,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile is the transfer shape of the caller's own account. The password
// hash never leaves the service.
type Profile struct {
	Username       string
	Email          string
	CreatedAt      time.Time
	ActiveSessions int
}

// ---- categories ----

func (s *DataService) ListCategories(ctx context.Context, token string) ([]*domain.Category, error) {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *DataService) GetCategory(ctx context.Context, token string, id int64) (*domain.Category, error) {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.categoryOwnedBy(ctx, user, id)
}

func (s *DataService) CreateCategory(ctx context.Context, token, name string) (*domain.Category, error) {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := validateField("name", name, nameMinLen, nameMaxLen); err != nil {
		return nil, err
	}

	created, err := s.categories.Create(ctx, &domain.Category{Name: name, UserID: user.ID})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

func (s *DataService) UpdateCategory(ctx context.Context, token string, id int64, name string) (*domain.Category, error) {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryOwnedBy(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if err := validateField("name", name, nameMinLen, nameMaxLen); err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

func (s *DataService) DeleteCategory(ctx context.Context, token string, id int64) error {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return err
	}

	category, err := s.categoryOwnedBy(ctx, user, id)
	if err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, category.ID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ---- notes ----

func (s *DataService) ListNotes(ctx context.Context, token string, categoryID int64) ([]*domain.Note, error) {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryOwnedBy(ctx, user, categoryID)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.GetByCategoryID(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *DataService) GetNote(ctx context.Context, token string, id int64) (*domain.Note, error) {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.noteOwnedBy(ctx, user, id)
}

func (s *DataService) CreateNote(ctx context.Context, token string, categoryID int64, name, content string) (*domain.Note, error) {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryOwnedBy(ctx, user, categoryID)
	if err != nil {
		return nil, err
	}

	if err := validateField("name", name, nameMinLen, nameMaxLen); err != nil {
		return nil, err
	}
	if err := validateField("content", content, 0, contentMaxLen); err != nil {
		return nil, err
	}

	created, err := s.notes.Create(ctx, &domain.Note{Name: name, Content: content, CategoryID: category.ID})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return created, nil
}

func (s *DataService) UpdateNote(ctx context.Context, token string, id int64, name, content string) (*domain.Note, error) {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	note, err := s.noteOwnedBy(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if err := validateField("name", name, nameMinLen, nameMaxLen); err != nil {
		return nil, err
	}
	if err := validateField("content", content, 0, contentMaxLen); err != nil {
		return nil, err
	}

	note.Name = name
	note.Content = content
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (s *DataService) DeleteNote(ctx context.Context, token string, id int64) error {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return err
	}

	note, err := s.noteOwnedBy(ctx, user, id)
	if err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, note.ID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// ---- profile ----

func (s *DataService) GetProfile(ctx context.Context, token string) (*Profile, error) {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, user)
}

// UpdateProfile changes username and email, checking both for collisions
// with every other account. A non-nil password is re-hashed before storage.
func (s *DataService) UpdateProfile(ctx context.Context, token, username, email string, password *string) (*Profile, error) {
	user, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := validateField("username", username, usernameMinLen, usernameMaxLen); err != nil {
		return nil, err
	}
	if err := validateField("email", email, emailMinLen, emailMaxLen); err != nil {
		return nil, err
	}

	if other, err := s.users.GetByUsername(ctx, username); err == nil && other.ID != user.ID {
		return nil, &domain.ConflictError{Field: "username"}
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if other, err := s.users.GetByEmail(ctx, email); err == nil && other.ID != user.ID {
		return nil, &domain.ConflictError{Field: "email"}
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	user.Username = username
	user.Email = email

	if password != nil {
		if err := validateField("password", *password, passwordMinLen, passwordMaxLen); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.profile(ctx, user)
}

// ---- helpers ----

func (s *DataService) profile(ctx context.Context, user *domain.User) (*Profile, error) {
	valid, err := s.tokens.GetStillValidByUserID(ctx, user.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	return &Profile{
		Username:       user.Username,
		Email:          user.Email,
		CreatedAt:      user.CreatedAt,
		ActiveSessions: len(valid),
	}, nil
}

// categoryOwnedBy loads the category and verifies ownership. Absence and
// ownership mismatch collapse into the same NotFoundError.
func (s *DataService) categoryOwnedBy(ctx context.Context, user *domain.User, id int64) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &domain.NotFoundError{Entity: "category"}
		}
		return nil, fmt.Errorf("load category: %w", err)
	}
	if category.UserID != user.ID {
		return nil, &domain.NotFoundError{Entity: "category"}
	}
	return category, nil
}

// noteOwnedBy loads the note and verifies transitive ownership through its
// parent category.
func (s *DataService) noteOwnedBy(ctx context.Context, user *domain.User, id int64) (*domain.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &domain.NotFoundError{Entity: "note"}
		}
		return nil, fmt.Errorf("load note: %w", err)
	}

	category, err := s.categories.GetByID(ctx, note.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &domain.NotFoundError{Entity: "note"}
		}
		return nil, fmt.Errorf("load note category: %w", err)
	}
	if category.UserID != user.ID {
		return nil, &domain.NotFoundError{Entity: "note"}
	}
	return note, nil
}
