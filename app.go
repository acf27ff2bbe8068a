package main

import (
	"time"

	"gamesync/internal/handlers"
	"gamesync/internal/middleware"
	"gamesync/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// NewApp assembles the Fiber application from already-wired services. Routing
// is the only thing that happens here, so tests can drive the exact same app
// against in-memory repositories.
func NewApp(authService *services.AuthService, userService *services.UserService, gameService *services.GameService) *fiber.App {
	app := fiber.New()

	app.Use(logger.New()) // request logger

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1")

	// Registration and login are the only routes reachable without a token.
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	apiV1.Use(middleware.AuthRequired(authService))
	handlers.NewUserHandler(userService).RegisterRoutes(apiV1)
	handlers.NewGameHandler(gameService).RegisterRoutes(apiV1)

	return app
}
