package middleware

import (
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // identity ID of the caller in fiber.Ctx locals
	EmailKey            = "email"
)

// Protected rejects requests without a valid bearer token before any handler
// runs, and stores the verified identity in the context locals.
func Protected(verifier domain.IdentityVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		identity, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			return err
		}

		setIdentity(c, identity)
		return c.Next()
	}
}

// OptionalAuth stores the identity when a valid bearer token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(verifier domain.IdentityVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(AuthorizationHeader) == "" {
			return c.Next()
		}
		token, err := bearerToken(c)
		if err != nil {
			return c.Next()
		}
		identity, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			logger.Get().Debug("Ignoring invalid optional bearer token", zap.String("path", c.Path()))
			return c.Next()
		}
		setIdentity(c, identity)
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by Protected or OptionalAuth, or nil.
func IdentityFrom(c *fiber.Ctx) *domain.Identity {
	userID, ok := c.Locals(UserIDKey).(string)
	if !ok || userID == "" {
		return nil
	}
	email, _ := c.Locals(EmailKey).(string)
	return &domain.Identity{UserID: userID, Email: email}
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(AuthorizationHeader)
	if authHeader == "" {
		return "", domain.NewUnauthenticatedError("authorization header is missing")
	}
	if !strings.HasPrefix(authHeader, BearerSchema) {
		return "", domain.NewUnauthenticatedError("authorization scheme is not Bearer")
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
	if token == "" {
		return "", domain.NewUnauthenticatedError("token is empty")
	}
	return token, nil
}

func setIdentity(c *fiber.Ctx, identity *domain.Identity) {
	c.Locals(UserIDKey, identity.UserID)
	c.Locals(EmailKey, identity.Email)
}
