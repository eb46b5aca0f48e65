package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/vantagesuite/vantage/internal/service"
)

// TokenHandler exposes the validation contract dependent services call during
// their callback flow.
type TokenHandler struct {
	authService *service.AuthService
}

func NewTokenHandler(authService *service.AuthService) *TokenHandler {
	return &TokenHandler{authService: authService}
}

// Validate answers whether the presented bearer token is currently valid and,
// if so, who owns it.
// GET /api/v1/auth/validate
func (h *TokenHandler) Validate(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"valid": false,
			"error": "missing bearer token",
		})
	}

	result, err := h.authService.ValidateToken(c.Context(), token)
	if err != nil {
		log.Printf("[TOKEN_HANDLER] Validation error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"valid": false,
			"error": "failed to validate token",
		})
	}

	if !result.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"valid": false,
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// PurgeExpired deletes tokens past their expiry from the store. Admin-only
// maintenance endpoint.
// DELETE /api/v1/auth/tokens/expired
func (h *TokenHandler) PurgeExpired(c *fiber.Ctx) error {
	deleted, err := h.authService.PurgeExpiredTokens(c.Context())
	if err != nil {
		log.Printf("[TOKEN_HANDLER] Failed to purge expired tokens: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to purge expired tokens",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deleted": deleted,
	})
}

// Me returns the principal summary for the token authenticated by the bearer
// middleware.
// GET /api/v1/auth/me
func (h *TokenHandler) Me(c *fiber.Ctx) error {
	user := c.Locals("user")
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": user,
	})
}
