package handler

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/vantagesuite/vantage/internal/config"
)

// deviceName picks the token name: the client-supplied device name when
// present, otherwise a fallback derived from the User-Agent.
func deviceName(c *fiber.Ctx, supplied string) string {
	if supplied != "" {
		return supplied
	}

	ua := c.Get(fiber.HeaderUserAgent)
	if ua == "" {
		return "unknown-device"
	}
	if len(ua) > 255 {
		// Cut on a rune boundary so a multi-byte character is never split
		cut := 255
		for cut > 0 && !utf8.RuneStart(ua[cut]) {
			cut--
		}
		ua = ua[:cut]
	}
	return ua
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, or returns "".
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// wantsJSON reports whether the caller asked for a machine-readable response
// instead of a browser redirect.
func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

// SetTokenCookie writes the token cookie with the configured shape.
func SetTokenCookie(c *fiber.Ctx, cfg *config.CookieConfig, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.Name,
		Value:    token,
		Domain:   cfg.Domain,
		Expires:  time.Now().Add(cfg.Lifetime),
		Secure:   cfg.Secure,
		HTTPOnly: cfg.HTTPOnly,
		SameSite: cfg.SameSite,
	})
}

// ClearCookie expires a cookie on the client.
func ClearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}
