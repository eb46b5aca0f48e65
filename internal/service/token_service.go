package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vantagesuite/vantage/internal/domain"
	"github.com/vantagesuite/vantage/internal/repository"
	"github.com/vantagesuite/vantage/pkg/token"
)

// TokenService mints and revokes opaque access tokens.
type TokenService struct {
	tokenRepo repository.TokenRepository
	expiry    time.Duration
}

func NewTokenService(tokenRepo repository.TokenRepository, expiry time.Duration) *TokenService {
	return &TokenService{
		tokenRepo: tokenRepo,
		expiry:    expiry,
	}
}

// Mint creates a token for the principal, scoped to the given abilities and
// named after the device. The returned plain value is shown exactly once.
func (s *TokenService) Mint(ctx context.Context, principalID uuid.UUID, name string, abilities []string) (string, *domain.AccessToken, error) {
	plain, hash, err := token.Generate()
	if err != nil {
		return "", nil, fmt.Errorf("failed to mint token: %w", err)
	}

	if len(abilities) == 0 {
		abilities = []string{domain.AbilityAll}
	}

	now := time.Now()
	var expiresAt *time.Time
	if s.expiry > 0 {
		exp := now.Add(s.expiry)
		expiresAt = &exp
	}

	accessToken := &domain.AccessToken{
		ID:          uuid.New(),
		PrincipalID: principalID,
		Name:        name,
		TokenHash:   hash,
		Abilities:   abilities,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
	}

	if err := s.tokenRepo.Create(ctx, accessToken); err != nil {
		return "", nil, err
	}

	return plain, accessToken, nil
}

// Revoke invalidates the token matching the presented plain value.
func (s *TokenService) Revoke(ctx context.Context, plain string) error {
	stored, err := s.tokenRepo.GetByHash(ctx, token.Hash(plain))
	if err != nil {
		return err
	}
	return s.tokenRepo.Revoke(ctx, stored.ID)
}
