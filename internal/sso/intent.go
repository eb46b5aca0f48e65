package sso

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidIntent = errors.New("invalid intent token")
)

// IntentCookieName carries the signed pending redirect intent between the
// login endpoint and the bridge.
const IntentCookieName = "vantage_sso_intent"

type intentClaims struct {
	jwt.RegisteredClaims
	Target   string `json:"target"`
	Intended string `json:"intended,omitempty"`
}

// IntentSigner signs and verifies pending redirect intents. The intent is
// carried by the browser in a short-lived signed cookie instead of ambient
// server-side session state, so it cannot leak across browser sessions and
// expires on its own if the login flow is abandoned.
type IntentSigner struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewIntentSigner(secret string, ttl time.Duration, issuer string) *IntentSigner {
	return &IntentSigner{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}
}

// Issue signs an intent into a compact token for the intent cookie.
func (s *IntentSigner) Issue(intent Intent) (string, error) {
	now := time.Now()

	claims := intentClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Target:   intent.Target,
		Intended: intent.Intended,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Read verifies a signed intent token and returns the carried intent. Expired
// or tampered tokens fail with ErrInvalidIntent.
func (s *IntentSigner) Read(tokenString string) (*Intent, error) {
	token, err := jwt.ParseWithClaims(tokenString, &intentClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidIntent
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidIntent
	}

	claims, ok := token.Claims.(*intentClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidIntent
	}

	return &Intent{Target: claims.Target, Intended: claims.Intended}, nil
}
