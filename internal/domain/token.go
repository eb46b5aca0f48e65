package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AccessToken is an opaque bearer credential bound to one principal. Only the
// SHA-256 hash of the token value is stored; the plain value is handed to the
// browser once at mint time and never persisted.
type AccessToken struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	PrincipalID uuid.UUID      `json:"principal_id" db:"principal_id"`
	Name        string         `json:"name" db:"name"`
	TokenHash   string         `json:"-" db:"token_hash"`
	Abilities   pq.StringArray `json:"abilities" db:"abilities"`
	LastUsedAt  *time.Time     `json:"last_used_at" db:"last_used_at"`
	ExpiresAt   *time.Time     `json:"expires_at" db:"expires_at"`
	RevokedAt   *time.Time     `json:"revoked_at" db:"revoked_at"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// AbilityAll grants a token the full permission set of its principal.
const AbilityAll = "*"

// Valid reports whether the token is usable at the given instant: not revoked
// and, if it carries an expiry, not expired.
func (t *AccessToken) Valid(now time.Time) bool {
	if t.RevokedAt != nil {
		return false
	}
	if t.ExpiresAt != nil && !now.Before(*t.ExpiresAt) {
		return false
	}
	return true
}

// Can reports whether the token's ability scope covers the named permission.
func (t *AccessToken) Can(ability string) bool {
	for _, a := range t.Abilities {
		if a == AbilityAll || a == ability {
			return true
		}
	}
	return false
}
