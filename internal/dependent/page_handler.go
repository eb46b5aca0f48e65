package dependent

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vantagesuite/vantage/internal/config"
	"github.com/vantagesuite/vantage/internal/domain"
)

// PageHandler serves the service's landing surfaces. Pages are rendered
// client-side; these endpoints only return the props.
type PageHandler struct {
	cfg *config.Config
}

func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

// Dashboard is the default post-login landing page.
// GET /dashboard
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*domain.PrincipalSummary)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"service": h.cfg.Server.Name,
		"user":    user,
	})
}

// Login is the error surface failed callbacks redirect to. It reports the
// error code and where to restart the flow.
// GET /login
func (h *PageHandler) Login(c *fiber.Ctx) error {
	resp := fiber.Map{
		"service":   h.cfg.Server.Name,
		"login_url": h.cfg.SSO.AuthorityURL + "/login",
	}

	if code := c.Query("error"); code != "" {
		resp["error"] = code
		if message := c.Query("message"); message != "" {
			resp["message"] = message
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
