package repository

import (
	"context"

	"github.com/vantagesuite/vantage/internal/domain"
)

// RoleRepository resolves roles and the permissions they grant.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	GetPermissionsForRoles(ctx context.Context, roleNames []string) ([]string, error)
}
