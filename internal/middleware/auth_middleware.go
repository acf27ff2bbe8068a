package middleware

import (
	"strings"
	"time"

	"gamesync/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CurrentUserKey is the Locals key under which the resolved account is stored.
const CurrentUserKey = "currentUser"

// AuthRequired is a Fiber middleware that resolves the bearer token into the
// calling account and passes it on via Locals. Handlers hand that account
// explicitly to every service call; nothing downstream reads ambient state.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		user, err := authService.ResolveUser(parts[1])
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(CurrentUserKey, user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"timestamp": time.Now().Format(time.RFC3339),
		"status":    fiber.StatusUnauthorized,
		"error":     "Unauthorized",
		"message":   message,
	})
}
