package usecase_test

import (
	"context"
	"time"

	"github.com/nbekov/noted/internal/domain"
	"github.com/nbekov/noted/internal/repository"
)

// In-memory repositories backing the usecase tests. Single-goroutine use
// only; tests that need storage failures set failWith.

type memUserRepo struct {
	users    map[int64]*domain.User
	nextID   int64
	failWith error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*domain.User)}
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetAll(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memTokenRepo struct {
	tokens   map[int64]*domain.Token
	nextID   int64
	failWith error
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[int64]*domain.Token)}
}

func (r *memTokenRepo) GetByID(_ context.Context, id int64) (*domain.Token, error) {
	t, ok := r.tokens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (r *memTokenRepo) GetAll(_ context.Context) ([]*domain.Token, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []*domain.Token
	for _, t := range r.tokens {
		out = append(out, t)
	}
	return out, nil
}

func (r *memTokenRepo) Create(_ context.Context, token *domain.Token) (*domain.Token, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.nextID++
	token.ID = r.nextID
	r.tokens[token.ID] = token
	return token, nil
}

func (r *memTokenRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tokens[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tokens, id)
	return nil
}

func (r *memTokenRepo) GetByToken(_ context.Context, token string) (*domain.Token, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, t := range r.tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memTokenRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Token, error) {
	var out []*domain.Token
	for _, t := range r.tokens {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTokenRepo) GetStillValidByUserID(_ context.Context, userID int64, now time.Time) ([]*domain.Token, error) {
	var out []*domain.Token
	for _, t := range r.tokens {
		if t.UserID == userID && !t.Expired(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

type memCategoryRepo struct {
	categories map[int64]*domain.Category
	nextID     int64
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[int64]*domain.Category)}
}

func (r *memCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *memCategoryRepo) GetAll(_ context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.nextID++
	category.ID = r.nextID
	r.categories[category.ID] = category
	return category, nil
}

func (r *memCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repository.ErrNotFound
	}
	r.categories[category.ID] = category
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memNoteRepo struct {
	notes  map[int64]*domain.Note
	nextID int64
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{notes: make(map[int64]*domain.Note)}
}

func (r *memNoteRepo) GetByID(_ context.Context, id int64) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return n, nil
}

func (r *memNoteRepo) GetAll(_ context.Context) ([]*domain.Note, error) {
	var out []*domain.Note
	for _, n := range r.notes {
		out = append(out, n)
	}
	return out, nil
}

func (r *memNoteRepo) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.nextID++
	note.ID = r.nextID
	r.notes[note.ID] = note
	return note, nil
}

func (r *memNoteRepo) Update(_ context.Context, note *domain.Note) error {
	if _, ok := r.notes[note.ID]; !ok {
		return repository.ErrNotFound
	}
	r.notes[note.ID] = note
	return nil
}

func (r *memNoteRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.notes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *memNoteRepo) GetByCategoryID(_ context.Context, categoryID int64) ([]*domain.Note, error) {
	var out []*domain.Note
	for _, n := range r.notes {
		if n.CategoryID == categoryID {
			out = append(out, n)
		}
	}
	return out, nil
}
