package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("auth-service")
	require.NoError(t, err)

	assert.Equal(t, "auth-service", cfg.Server.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.SSO.TokenExpiry)
	assert.Equal(t, 5*time.Second, cfg.SSO.ValidateTimeout)
	assert.Equal(t, DefaultTokenCookieName, cfg.Cookie.Name)
	assert.True(t, cfg.Cookie.HTTPOnly)

	// Known dependent services with their dashboard/callback pairs
	require.Len(t, cfg.SSO.DependentServices, 2)
	assert.Equal(t, "http://localhost:8081/dashboard", cfg.SSO.DependentServices[0].Dashboard)
	assert.Equal(t, "http://localhost:8081/auth/callback", cfg.SSO.DependentServices[0].Callback)

	// Default redirect falls back to the first dependent's callback
	assert.Equal(t, cfg.SSO.DependentServices[0].Callback, cfg.SSO.DefaultRedirect)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SSO_AUTHORITY_URL", "https://auth.example.com")
	t.Setenv("SSO_CRM_URL", "https://crm.example.com")
	t.Setenv("SSO_TOKEN_EXPIRY", "1h")
	t.Setenv("TOKEN_COOKIE_SECURE", "true")

	cfg, err := Load("crm-service")
	require.NoError(t, err)

	assert.Equal(t, "https://auth.example.com", cfg.SSO.AuthorityURL)
	assert.Equal(t, "https://crm.example.com/auth/callback", cfg.SSO.DependentServices[0].Callback)
	assert.Equal(t, time.Hour, cfg.SSO.TokenExpiry)
	assert.True(t, cfg.Cookie.Secure)
}

func TestSSOURLHelpers(t *testing.T) {
	sso := SSOConfig{ServiceURL: "https://crm.example.com"}

	assert.Equal(t, "https://crm.example.com/login", sso.LoginURL())
	assert.Equal(t, "https://crm.example.com/dashboard", sso.DashboardURL())
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "vantage_auth", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=vantage_auth sslmode=disable", db.DSN())
}
