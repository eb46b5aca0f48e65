package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vantagesuite/vantage/internal/domain"
)

// TokenRepository manages opaque access tokens. Tokens are looked up by their
// SHA-256 hash; the plain value never reaches this layer.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.AccessToken) error
	GetByHash(ctx context.Context, hash string) (*domain.AccessToken, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeAllForPrincipal(ctx context.Context, principalID uuid.UUID) error
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
