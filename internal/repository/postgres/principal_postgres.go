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

type principalRepository struct {
	db *sqlx.DB
}

// NewPrincipalRepository creates a new PostgreSQL principal repository
func NewPrincipalRepository(db *sqlx.DB) repository.PrincipalRepository {
	return &principalRepository{db: db}
}

func (r *principalRepository) Create(ctx context.Context, principal *domain.Principal) error {
	query := `
		INSERT INTO principals (
			id, email, name, password_hash, email_verified_at,
			created_at, updated_at, last_login_at
		) VALUES (
			:id, :email, :name, :password_hash, :email_verified_at,
			:created_at, :updated_at, :last_login_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, principal)
	if err != nil {
		return fmt.Errorf("failed to create principal: %w", err)
	}

	return nil
}

func (r *principalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	query := `
		SELECT id, email, name, password_hash, email_verified_at,
			   created_at, updated_at, last_login_at
		FROM principals
		WHERE id = $1`

	var principal domain.Principal
	err := r.db.GetContext(ctx, &principal, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("principal not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get principal by id: %w", err)
	}

	return &principal, nil
}

func (r *principalRepository) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	query := `
		SELECT id, email, name, password_hash, email_verified_at,
			   created_at, updated_at, last_login_at
		FROM principals
		WHERE email = $1`

	var principal domain.Principal
	err := r.db.GetContext(ctx, &principal, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("principal not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get principal by email: %w", err)
	}

	return &principal, nil
}

func (r *principalRepository) GetRoleNames(ctx context.Context, principalID uuid.UUID) ([]string, error) {
	query := `
		SELECT r.name
		FROM roles r
		JOIN principal_roles pr ON pr.role_id = r.id
		WHERE pr.principal_id = $1
		ORDER BY r.name`

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, principalID); err != nil {
		return nil, fmt.Errorf("failed to get role names: %w", err)
	}

	return names, nil
}

// GetDirectPermissionNames returns only the permissions granted to the
// principal directly; role-derived permissions come from the role repository.
func (r *principalRepository) GetDirectPermissionNames(ctx context.Context, principalID uuid.UUID) ([]string, error) {
	query := `
		SELECT p.name
		FROM permissions p
		JOIN principal_permissions pp ON pp.permission_id = p.id
		WHERE pp.principal_id = $1
		ORDER BY p.name`

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, principalID); err != nil {
		return nil, fmt.Errorf("failed to get direct permission names: %w", err)
	}

	return names, nil
}

func (r *principalRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE principals
		SET last_login_at = $1,
			updated_at = $2
		WHERE id = $3`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("principal not found")
	}

	return nil
}
