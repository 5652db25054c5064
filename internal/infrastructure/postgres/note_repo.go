package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nbekov/noted/internal/domain"
	"github.com/nbekov/noted/internal/repository"
)

type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, content, category_id FROM notes WHERE id = $1`, id)
	return scanNote(row)
}

func (r *NoteRepository) GetAll(ctx context.Context) ([]*domain.Note, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, content, category_id FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (name, content, category_id) VALUES ($1, $2, $3) RETURNING id`,
		note.Name, note.Content, note.CategoryID,
	).Scan(&note.ID)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return note, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE notes SET name = $2, content = $3 WHERE id = $1`,
		note.ID, note.Name, note.Content)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NoteRepository) GetByCategoryID(ctx context.Context, categoryID int64) ([]*domain.Note, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, content, category_id FROM notes WHERE category_id = $1 ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query notes by category: %w", err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.Name, &n.Content, &n.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	return &n, nil
}

func collectNotes(rows pgx.Rows) ([]*domain.Note, error) {
	var notes []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
