package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vantagesuite/vantage/internal/domain"
)

// PrincipalRepository manages user identities and their role/permission sets.
type PrincipalRepository interface {
	Create(ctx context.Context, principal *domain.Principal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error)
	GetByEmail(ctx context.Context, email string) (*domain.Principal, error)
	GetRoleNames(ctx context.Context, principalID uuid.UUID) ([]string, error)
	GetDirectPermissionNames(ctx context.Context, principalID uuid.UUID) ([]string, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
