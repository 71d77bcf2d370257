package handler

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// callerID returns the identity ID set by middleware.Protected.
func callerID(c *fiber.Ctx) (string, error) {
	identity := middleware.IdentityFrom(c)
	if identity == nil || identity.UserID == "" {
		return "", domain.NewUnauthenticatedError("User ID not found in context")
	}
	return identity.UserID, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}
	return nil
}
