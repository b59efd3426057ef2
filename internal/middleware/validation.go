package middleware

import (
	"eventhub-backend/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ParseBody decodes the JSON body into dest and runs struct validation.
// Failures map to the VALIDATION_ERROR code.
func ParseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return apperrors.ErrValidation
	}

	if err := validate.Struct(dest); err != nil {
		return apperrors.ErrValidation
	}

	return nil
}
