package dependent

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/vantagesuite/vantage/internal/client"
	"github.com/vantagesuite/vantage/internal/config"
	"github.com/vantagesuite/vantage/internal/handler"
	"github.com/vantagesuite/vantage/internal/handler/middleware"
	"github.com/vantagesuite/vantage/pkg/sessions"
)

// Run boots a dependent service: the CRM and project services differ only in
// name and configuration.
func Run(serviceName string) {
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}()
	log.Println("✓ Redis connection established")

	sessionStore := sessions.NewStore(redisClient, cfg.SSO.SessionTTL)
	authorityClient := client.NewAuthorityClient(cfg.SSO.AuthorityURL, cfg.SSO.ValidateTimeout)

	callbackHandler := NewCallbackHandler(authorityClient, sessionStore, cfg)
	pageHandler := NewPageHandler(cfg)
	healthHandler := handler.NewHealthHandler(serviceName)

	app := fiber.New(fiber.Config{
		AppName:      fmt.Sprintf("Vantage %s v1.0", serviceName),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggerMiddleware())

	SetupRoutes(
		app,
		callbackHandler,
		pageHandler,
		healthHandler,
		SessionMiddleware(sessionStore, cfg),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("🚀 %s starting on http://localhost%s", serviceName, addr)
		if err := app.Listen(addr); err != nil {
			log.Printf("❌ Server failed to start: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("⏳ Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✓ Server stopped")
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		if closeErr := redisClient.Close(); closeErr != nil {
			log.Printf("Error closing Redis after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return redisClient, nil
}
