package main

import (
	"errors"
	"log"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/handlers"
	"bookstore/internal/middleware"
	"bookstore/internal/repositories"
	"bookstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewApp wires repositories, services and handlers into a Fiber app.
// publisher and provider may be nil.
func NewApp(cfg *config.Config, db *gorm.DB, publisher services.EventPublisher, provider services.CatalogProvider) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	cartService := services.NewCartService(cartRepo)
	orderService := services.NewOrderService(repositories.NewGORMTransactor(db), orderRepo, publisher)
	catalogService := services.NewCatalogService(provider, cfg.CatalogTimeout)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	metrics := middleware.NewMetrics()

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(metrics.Handler())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", metrics.Endpoint())

	// --- API Routes ---
	api := app.Group("/api")
	authHandler.RegisterRoutes(api)

	// Auth is mounted per prefix so unknown /api paths still 404.
	requireAuth := middleware.AuthRequired(authService)
	catalogHandler.RegisterRoutes(api, requireAuth)
	cartHandler.RegisterRoutes(api, requireAuth)
	orderHandler.RegisterRoutes(api, requireAuth)

	return app
}

// errorHandler renders errors that escape a handler, including router 404s.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code == fiber.StatusInternalServerError {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}
	message := "Internal server error"
	if fe != nil {
		message = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
