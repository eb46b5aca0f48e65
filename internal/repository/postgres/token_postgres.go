package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vantagesuite/vantage/internal/domain"
	"github.com/vantagesuite/vantage/internal/repository"
)

type tokenRepository struct {
	db *sqlx.DB
}

// NewTokenRepository creates a new PostgreSQL access token repository
func NewTokenRepository(db *sqlx.DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *domain.AccessToken) error {
	query := `
		INSERT INTO access_tokens (
			id, principal_id, name, token_hash, abilities,
			last_used_at, expires_at, revoked_at, created_at
		) VALUES (
			:id, :principal_id, :name, :token_hash, :abilities,
			:last_used_at, :expires_at, :revoked_at, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

func (r *tokenRepository) GetByHash(ctx context.Context, hash string) (*domain.AccessToken, error) {
	query := `
		SELECT id, principal_id, name, token_hash, abilities,
			   last_used_at, expires_at, revoked_at, created_at
		FROM access_tokens
		WHERE token_hash = $1`

	var token domain.AccessToken
	err := r.db.GetContext(ctx, &token, query, hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("token not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get token by hash: %w", err)
	}

	return &token, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE access_tokens
		SET revoked_at = $1
		WHERE id = $2 AND revoked_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("token not found or already revoked")
	}

	return nil
}

func (r *tokenRepository) RevokeAllForPrincipal(ctx context.Context, principalID uuid.UUID) error {
	query := `
		UPDATE access_tokens
		SET revoked_at = $1
		WHERE principal_id = $2 AND revoked_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, time.Now(), principalID); err != nil {
		return fmt.Errorf("failed to revoke tokens for principal: %w", err)
	}

	return nil
}

func (r *tokenRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE access_tokens
		SET last_used_at = $1
		WHERE id = $2`

	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to touch token: %w", err)
	}

	return nil
}

// DeleteExpired reclaims tokens whose expiry passed before the given cutoff.
func (r *tokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM access_tokens WHERE expires_at IS NOT NULL AND expires_at < $1`

	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
