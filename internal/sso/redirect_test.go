package sso

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantagesuite/vantage/internal/config"
)

func testSSOConfig() *config.SSOConfig {
	return &config.SSOConfig{
		AuthorityURL:    "https://auth.local",
		DefaultRedirect: "https://crm.local/auth/callback",
		DependentServices: []config.DependentService{
			{Name: "crm", Dashboard: "https://crm.local/dashboard", Callback: "https://crm.local/auth/callback"},
			{Name: "project", Dashboard: "https://pm.local/dashboard", Callback: "https://pm.local/auth/callback"},
		},
	}
}

func TestBuildRedirectURL(t *testing.T) {
	t.Run("appends with question mark when no query string", func(t *testing.T) {
		got := BuildRedirectURL("https://svc/auth/callback", "abc123", "")
		assert.Equal(t, "https://svc/auth/callback?token=abc123", got)
	})

	t.Run("appends with ampersand when query string present", func(t *testing.T) {
		got := BuildRedirectURL("https://svc/auth/callback?x=1", "abc123", "")
		assert.Equal(t, "https://svc/auth/callback?x=1&token=abc123", got)
	})

	t.Run("url-encodes the intended parameter", func(t *testing.T) {
		got := BuildRedirectURL("https://svc/auth/callback", "abc123", "https://svc/dashboard")
		assert.Equal(t, "https://svc/auth/callback?token=abc123&intended=https%3A%2F%2Fsvc%2Fdashboard", got)
	})
}

func TestResolveIntent(t *testing.T) {
	cfg := testSSOConfig()

	t.Run("falls back to configured default", func(t *testing.T) {
		intent := ResolveIntent("", nil, cfg)
		assert.Equal(t, "https://crm.local/auth/callback", intent.Target)
		assert.Empty(t, intent.Intended)
	})

	t.Run("pending intent beats default", func(t *testing.T) {
		pending := &Intent{Target: "https://pm.local/auth/callback"}
		intent := ResolveIntent("", pending, cfg)
		assert.Equal(t, "https://pm.local/auth/callback", intent.Target)
	})

	t.Run("explicit parameter beats pending intent", func(t *testing.T) {
		pending := &Intent{Target: "https://pm.local/auth/callback"}
		intent := ResolveIntent("https://crm.local/auth/callback", pending, cfg)
		assert.Equal(t, "https://crm.local/auth/callback", intent.Target)
	})

	t.Run("dashboard target is rewritten to callback with intended", func(t *testing.T) {
		intent := ResolveIntent("https://crm.local/dashboard", nil, cfg)
		assert.Equal(t, "https://crm.local/auth/callback", intent.Target)
		assert.Equal(t, "https://crm.local/dashboard", intent.Intended)
	})

	t.Run("pending dashboard target is rewritten too", func(t *testing.T) {
		pending := &Intent{Target: "https://pm.local/dashboard"}
		intent := ResolveIntent("", pending, cfg)
		assert.Equal(t, "https://pm.local/auth/callback", intent.Target)
		assert.Equal(t, "https://pm.local/dashboard", intent.Intended)
	})

	t.Run("callback target is never rewritten to dashboard", func(t *testing.T) {
		intent := ResolveIntent("https://crm.local/auth/callback", nil, cfg)
		assert.Equal(t, "https://crm.local/auth/callback", intent.Target)
		assert.Empty(t, intent.Intended)
	})
}

func TestIntentSigner(t *testing.T) {
	signer := NewIntentSigner("test-secret", 10*time.Minute, "auth-service")

	t.Run("round trip", func(t *testing.T) {
		tokenString, err := signer.Issue(Intent{
			Target:   "https://crm.local/auth/callback",
			Intended: "https://crm.local/clients/42",
		})
		require.NoError(t, err)

		intent, err := signer.Read(tokenString)
		require.NoError(t, err)
		assert.Equal(t, "https://crm.local/auth/callback", intent.Target)
		assert.Equal(t, "https://crm.local/clients/42", intent.Intended)
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		tokenString, err := signer.Issue(Intent{Target: "https://crm.local/auth/callback"})
		require.NoError(t, err)

		_, err = signer.Read(tokenString + "x")
		assert.ErrorIs(t, err, ErrInvalidIntent)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewIntentSigner("other-secret", 10*time.Minute, "auth-service")
		tokenString, err := other.Issue(Intent{Target: "https://crm.local/auth/callback"})
		require.NoError(t, err)

		_, err = signer.Read(tokenString)
		assert.ErrorIs(t, err, ErrInvalidIntent)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		shortLived := NewIntentSigner("test-secret", -time.Minute, "auth-service")
		tokenString, err := shortLived.Issue(Intent{Target: "https://crm.local/auth/callback"})
		require.NoError(t, err)

		_, err = signer.Read(tokenString)
		assert.ErrorIs(t, err, ErrInvalidIntent)
	})
}
