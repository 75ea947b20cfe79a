package middleware

import (
	"strings"

	"agritrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Keys under which the caller's identity is stored in c.Locals.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

// TokenValidator verifies session tokens.
type TokenValidator interface {
	ValidateToken(token string) (*services.Claims, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(auth TokenValidator, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Access token required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		claims, err := auth.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			log.WithError(err).WithField("path", c.Path()).Debug("rejected token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		return c.Next()
	}
}

// UserID returns the authenticated caller set by AuthRequired.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
