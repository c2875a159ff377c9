package handlers

import (
	"errors"

	"pomodo/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// errorResponse maps controller errors onto the HTTP surface. Validation
// failures carry the per-field list; known business errors keep their exact
// client message; everything else collapses to a generic 500 so internal
// detail never leaks.
func errorResponse(c *fiber.Ctx, err error) error {
	if validation, ok := apperrors.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": validation.Errors,
		})
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	case errors.Is(err, apperrors.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "User already exists",
		})
	case errors.Is(err, apperrors.ErrDuplicateName):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Preset name already exists",
		})
	case errors.Is(err, apperrors.ErrQuotaExceeded):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Maximum of 3 custom presets allowed",
		})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Preset not found",
		})
	case errors.Is(err, apperrors.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}
}
