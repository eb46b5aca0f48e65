package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vantagesuite/vantage/internal/domain"
	"github.com/vantagesuite/vantage/internal/repository"
)

type roleRepository struct {
	db *sqlx.DB
}

// NewRoleRepository creates a new PostgreSQL role repository
func NewRoleRepository(db *sqlx.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		WHERE name = $1`

	var role domain.Role
	err := r.db.GetContext(ctx, &role, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("role not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}

	return &role, nil
}

func (r *roleRepository) GetPermissionsForRoles(ctx context.Context, roleNames []string) ([]string, error) {
	if len(roleNames) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT DISTINCT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN roles r ON r.id = rp.role_id
		WHERE r.name IN (?)
		ORDER BY p.name`, roleNames)
	if err != nil {
		return nil, fmt.Errorf("failed to build permissions query: %w", err)
	}

	query = r.db.Rebind(query)

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get permissions for roles: %w", err)
	}

	return names, nil
}
