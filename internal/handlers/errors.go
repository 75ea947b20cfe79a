package handlers

import (
	"errors"

	"agritrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// writeError maps a service error onto the HTTP status and body the API
// promises. Anything unclassified is logged and answered with fallback only.
func writeError(c *fiber.Ctx, log logrus.FieldLogger, err error, fallback string) error {
	var verr *services.ValidationError
	var nf *services.NotFoundError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": verr.Details,
		})
	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nf.Error()})
	case errors.Is(err, services.ErrMissingScopeKey):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "farm_id is required"})
	case errors.Is(err, services.ErrDuplicateUsername):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	log.WithError(err).WithFields(logrus.Fields{
		"request_id": c.Locals("requestid"),
		"method":     c.Method(),
		"path":       c.Path(),
	}).Error(fallback)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
}
