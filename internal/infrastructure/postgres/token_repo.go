package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nbekov/noted/internal/domain"
	"github.com/nbekov/noted/internal/repository"
)

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) GetByID(ctx context.Context, id int64) (*domain.Token, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at FROM tokens WHERE id = $1`, id)
	return scanToken(row)
}

func (r *TokenRepository) GetAll(ctx context.Context) ([]*domain.Token, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, token, expires_at FROM tokens ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tokens: %w", err)
	}
	defer rows.Close()
	return collectTokens(rows)
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.Token) (*domain.Token, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tokens (user_id, token, expires_at) VALUES ($1, $2, $3) RETURNING id`,
		token.UserID, token.Token, token.ExpiresAt,
	).Scan(&token.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("insert token: %w", err)
	}
	return token, nil
}

// Delete of an already-removed token reports ErrNotFound; the sweeper
// treats that as a no-op.
func (r *TokenRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TokenRepository) GetByToken(ctx context.Context, token string) (*domain.Token, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at FROM tokens WHERE token = $1`, token)
	return scanToken(row)
}

func (r *TokenRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Token, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, token, expires_at FROM tokens WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query tokens by user: %w", err)
	}
	defer rows.Close()
	return collectTokens(rows)
}

func (r *TokenRepository) GetStillValidByUserID(ctx context.Context, userID int64, now time.Time) ([]*domain.Token, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, token, expires_at FROM tokens WHERE user_id = $1 AND expires_at > $2 ORDER BY id`,
		userID, now)
	if err != nil {
		return nil, fmt.Errorf("query valid tokens by user: %w", err)
	}
	defer rows.Close()
	return collectTokens(rows)
}

func scanToken(row pgx.Row) (*domain.Token, error) {
	var t domain.Token
	err := row.Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan token: %w", err)
	}
	return &t, nil
}

func collectTokens(rows pgx.Rows) ([]*domain.Token, error) {
	var tokens []*domain.Token
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
