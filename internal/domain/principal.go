package domain

import (
	"time"

	"github.com/google/uuid"
)

// Principal is a user identity owned by the Token Authority.
type Principal struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Email           string     `json:"email" db:"email"`
	Name            string     `json:"name" db:"name"`
	PasswordHash    string     `json:"-" db:"password_hash"`
	EmailVerifiedAt *time.Time `json:"email_verified_at" db:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt     *time.Time `json:"last_login_at" db:"last_login_at"`

	// Loaded separately, not columns on the principals table.
	Roles       []string `json:"roles" db:"-"`
	Permissions []string `json:"permissions" db:"-"`
}

// PrincipalSummary is the identity payload that crosses the service boundary:
// what the validation endpoint returns and what dependent sessions hold.
type PrincipalSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions,omitempty"`
}

func (p *Principal) Summary() *PrincipalSummary {
	return &PrincipalSummary{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Roles:       p.Roles,
		Permissions: p.Permissions,
	}
}
