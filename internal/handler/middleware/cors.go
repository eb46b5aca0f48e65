package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/vantagesuite/vantage/internal/config"
)

// CORSMiddleware allows the dependent service origins to call the authority
func CORSMiddleware(cfg *config.Config) fiber.Handler {
	origins := make([]string, 0, len(cfg.SSO.DependentServices))
	for _, svc := range cfg.SSO.DependentServices {
		origins = append(origins, strings.TrimSuffix(svc.Callback, "/auth/callback"))
	}

	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	})
}
