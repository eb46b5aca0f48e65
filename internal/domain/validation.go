package domain

import "errors"

// Validation outcomes as seen by a dependent service. "Valid but no user" and
// "invalid" are distinct failures so the callback can report them separately.
var (
	ErrTokenInvalid = errors.New("token rejected by authority")
	ErrNoUserData   = errors.New("authority returned no user data")
)

// ValidationResult is the authority's answer to a token validation call.
type ValidationResult struct {
	Valid bool              `json:"valid"`
	User  *PrincipalSummary `json:"user,omitempty"`
}
