package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vantagesuite/vantage/internal/handler/middleware"
)

// SetupRoutes wires the authority's endpoints.
func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	bridgeHandler *BridgeHandler,
	tokenHandler *TokenHandler,
	healthHandler *HealthHandler,
	bearerAuth fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// Browser-facing SSO surface
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)
	app.Get("/sso/redirect", bridgeHandler.Redirect)

	// Machine-facing API
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Get("/validate", tokenHandler.Validate)
	auth.Get("/me", bearerAuth, tokenHandler.Me)
	auth.Delete("/tokens/expired", bearerAuth, middleware.RequireRole("admin"), tokenHandler.PurgeExpired)
}
