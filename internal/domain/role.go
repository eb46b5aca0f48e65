package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role groups permissions under a name assignable to principals.
type Role struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"required,min=2,max=100"`
	Description string    `json:"description" db:"description" validate:"max=500"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Permission is a granular grant, either attached to a role or directly to a
// principal.
type Permission struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name" validate:"required,min=2,max=100"`
}
