package middleware

import (
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateIDParam rejects requests whose path parameter is not an entity ID.
func (vm *ValidationMiddleware) ValidateIDParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := vm.validator.ValidateID(param, c.Params(param)); err != nil {
			return err
		}
		return c.Next()
	}
}

// ValidateSlugParam rejects requests whose path parameter is not a normalized slug.
func (vm *ValidationMiddleware) ValidateSlugParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := vm.validator.ValidateSlug(param, c.Params(param)); err != nil {
			return err
		}
		return c.Next()
	}
}
