package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	SSO      SSOConfig
	Cookie   CookieConfig
}

type ServerConfig struct {
	Name         string
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SSOConfig describes the cross-service handoff surface: where the Token
// Authority lives, where this service lives, and how minted tokens behave.
type SSOConfig struct {
	AuthorityURL      string
	ServiceURL        string
	DefaultRedirect   string
	DependentServices []DependentService
	TokenExpiry       time.Duration
	IntentSecret      string
	IntentTTL         time.Duration
	ValidateTimeout   time.Duration
	SessionTTL        time.Duration
}

// DependentService is a service that accepts tokens minted by the authority.
// Dashboard is the direct landing URL that must never be handed a token
// without passing through Callback first.
type DependentService struct {
	Name      string
	Dashboard string
	Callback  string
}

type CookieConfig struct {
	Name     string
	Lifetime time.Duration
	Domain   string
	Secure   bool
	HTTPOnly bool
	SameSite string
}

// DefaultTokenCookieName is the fallback token cookie name shared by all
// services; each service can override it via TOKEN_COOKIE_NAME.
const DefaultTokenCookieName = "vantage_token"

func Load(serviceName string) (*Config, error) {
	// Intentar cargar .env (opcional en producción)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Name:         serviceName,
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "vantage"),
			Password: getEnv("DB_PASSWORD", "vantage"),
			DBName:   getEnv("DB_NAME", "vantage_auth"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		SSO: SSOConfig{
			AuthorityURL:    getEnv("SSO_AUTHORITY_URL", "http://localhost:8080"),
			ServiceURL:      getEnv("SSO_SERVICE_URL", "http://localhost:8080"),
			DefaultRedirect: getEnv("SSO_DEFAULT_REDIRECT", ""),
			TokenExpiry:     getDurationEnv("SSO_TOKEN_EXPIRY", 24*time.Hour),
			IntentSecret:    getEnv("SSO_INTENT_SECRET", "change-me-in-production"),
			IntentTTL:       getDurationEnv("SSO_INTENT_TTL", 10*time.Minute),
			ValidateTimeout: getDurationEnv("SSO_VALIDATE_TIMEOUT", 5*time.Second),
			SessionTTL:      getDurationEnv("SSO_SESSION_TTL", 24*time.Hour),
		},
		Cookie: CookieConfig{
			Name:     getEnv("TOKEN_COOKIE_NAME", DefaultTokenCookieName),
			Lifetime: getDurationEnv("TOKEN_COOKIE_LIFETIME", 1440*time.Minute),
			Domain:   getEnv("TOKEN_COOKIE_DOMAIN", ""),
			Secure:   getBoolEnv("TOKEN_COOKIE_SECURE", false),
			HTTPOnly: getBoolEnv("TOKEN_COOKIE_HTTPONLY", true),
			SameSite: getEnv("TOKEN_COOKIE_SAMESITE", "Lax"),
		},
	}

	// Known dependent services, used by the authority for redirect target
	// resolution and the dashboard-rewrite rule.
	for _, svc := range []struct{ name, env, fallback string }{
		{"crm", "SSO_CRM_URL", "http://localhost:8081"},
		{"project", "SSO_PROJECT_URL", "http://localhost:8082"},
	} {
		base := getEnv(svc.env, svc.fallback)
		cfg.SSO.DependentServices = append(cfg.SSO.DependentServices, DependentService{
			Name:      svc.name,
			Dashboard: base + "/dashboard",
			Callback:  base + "/auth/callback",
		})
	}

	if cfg.SSO.DefaultRedirect == "" {
		cfg.SSO.DefaultRedirect = cfg.SSO.DependentServices[0].Callback
	}

	return cfg, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// LoginURL is where failed SSO flows send the browser.
func (c *SSOConfig) LoginURL() string {
	return c.ServiceURL + "/login"
}

// DashboardURL is this service's default landing page.
func (c *SSOConfig) DashboardURL() string {
	return c.ServiceURL + "/dashboard"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
