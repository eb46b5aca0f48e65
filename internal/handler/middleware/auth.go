package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vantagesuite/vantage/internal/service"
)

// BearerAuth validates opaque bearer tokens against the token store and puts
// the owning principal summary into the request locals.
func BearerAuth(authService *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization header",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authorization header format",
			})
		}

		token := parts[1]
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing token",
			})
		}

		result, err := authService.ValidateToken(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to verify token status",
			})
		}

		if !result.Valid || result.User == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		c.Locals("user", result.User)
		c.Locals("user_id", result.User.ID)
		c.Locals("roles", result.User.Roles)
		c.Locals("token", token)

		return c.Next()
	}
}

// RequireRole verifies that the authenticated principal holds at least one of
// the named roles. Must run after BearerAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRoles, ok := c.Locals("roles").([]string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		for _, required := range roles {
			for _, have := range userRoles {
				if have == required {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":          "Forbidden: insufficient permissions",
			"required_roles": roles,
		})
	}
}
