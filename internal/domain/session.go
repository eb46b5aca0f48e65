package domain

import "time"

// SessionData is the server-side state a service keeps per browser session
// after a successful login or callback validation.
type SessionData struct {
	User      *PrincipalSummary `json:"user"`
	Token     string            `json:"token"`
	CreatedAt time.Time         `json:"created_at"`
}
