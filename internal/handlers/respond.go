package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	logrus "github.com/sirupsen/logrus"

	"accidenta/internal/apperrors"
)

// respondError maps a domain error kind to an HTTP status. Anything without a
// kind collapses to a generic 500; the detail is logged, not leaked.
func respondError(c *fiber.Ctx, err error) error {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case apperrors.KindUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	case apperrors.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case apperrors.KindConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	default:
		logrus.WithError(err).Errorf("Unhandled error on %s %s", c.Method(), c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error interno del servidor"})
	}
}

// respondValidationErrors returns the per-field error map for a failed
// validator.Struct call.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// currentUserID returns the authenticated user's ID set by the JWT middleware.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}
