package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// Prefix identifies tokens minted by the authority.
	Prefix = "vgt_"
	// RandomLength is the number of random bytes per token (256 bits).
	RandomLength = 32
)

// Generate mints a new opaque bearer token. It returns the plain value, which
// is handed to the client exactly once, and its SHA-256 hex hash, which is what
// gets persisted.
func Generate() (plain string, hash string, err error) {
	randomBytes := make([]byte, RandomLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	plain = Prefix + base64.RawURLEncoding.EncodeToString(randomBytes)
	return plain, Hash(plain), nil
}

// Hash computes the SHA-256 hex digest of a plain token for storage lookup.
func Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// ValidFormat checks that a presented value is shaped like one of our tokens
// before any storage lookup happens.
func ValidFormat(plain string) error {
	if !strings.HasPrefix(plain, Prefix) {
		return fmt.Errorf("token must start with %q", Prefix)
	}

	encoded := strings.TrimPrefix(plain, Prefix)
	if encoded == "" {
		return fmt.Errorf("token is too short")
	}

	if _, err := base64.RawURLEncoding.DecodeString(encoded); err != nil {
		return fmt.Errorf("invalid token encoding: %w", err)
	}

	return nil
}
