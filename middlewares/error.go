package middlewares

import (
	"errors"

	"buildflow-backend/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 2) Validation errors from request binding (422 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	// 3) Service taxonomy
	var se *services.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case services.KindNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": se.Message})
		case services.KindValidation:
			body := fiber.Map{"message": se.Message}
			if len(se.Fields) > 0 {
				body["errors"] = se.Fields
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
		case services.KindBusinessRule:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": se.Message})
		case services.KindConflict:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": se.Message})
		}
	}

	// 4) Unknown errors (500)
	log.Error().Err(err).Str("path", c.Path()).Msg("internal error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
