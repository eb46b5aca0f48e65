package dependent

import (
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/vantagesuite/vantage/internal/config"
	"github.com/vantagesuite/vantage/pkg/sessions"
)

// SessionMiddleware resolves the session cookie into session data for
// protected routes. Browsers without a session are sent to the authority's
// bridge so they come back through the callback with a fresh token.
func SessionMiddleware(sessionStore *sessions.Store, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(sessions.CookieName)
		if sessionID == "" {
			return redirectToAuthority(c, cfg)
		}

		data, err := sessionStore.Get(c.Context(), sessionID)
		if err != nil {
			log.Printf("[SESSION] No session for %s: %v", sessionID, err)
			return redirectToAuthority(c, cfg)
		}

		c.Locals("session", data)
		c.Locals("user", data.User)
		c.Locals("token", data.Token)

		return c.Next()
	}
}

func redirectToAuthority(c *fiber.Ctx, cfg *config.Config) error {
	if wantsJSONRequest(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	// Carry the original destination so the bridge can bring the browser back
	target := cfg.SSO.AuthorityURL + "/sso/redirect?redirect_to=" +
		url.QueryEscape(cfg.SSO.ServiceURL+c.Path())
	return c.Redirect(target, fiber.StatusFound)
}

func wantsJSONRequest(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}
