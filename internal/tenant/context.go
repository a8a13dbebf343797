package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Locals keys shared by middleware and handlers.
const (
	LocalJWT    = "user"
	LocalAPIKey = "api_key"
)

// GetAPIKey returns the API key resolved by the token middleware, if any.
func GetAPIKey(c *fiber.Ctx) (string, bool) {
	key, ok := c.Locals(LocalAPIKey).(string)
	return key, ok
}

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals(LocalJWT).(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
