package dependent

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vantagesuite/vantage/internal/handler"
)

// SetupRoutes wires a dependent service's SSO surface.
func SetupRoutes(
	app *fiber.App,
	callbackHandler *CallbackHandler,
	pageHandler *PageHandler,
	healthHandler *handler.HealthHandler,
	sessionMiddleware fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// SSO entry points (public by design)
	app.Get("/auth/callback", callbackHandler.Callback)
	app.Get("/login", pageHandler.Login)
	app.Post("/logout", callbackHandler.Logout)

	// Session-protected pages
	app.Get("/dashboard", sessionMiddleware, pageHandler.Dashboard)
}
