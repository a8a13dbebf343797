package middleware

import (
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/apikey"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// APITokenAuth copies the API key of the Authorization header into the
// request locals. Requests without a key pass through; handlers decide.
func APITokenAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key, ok := apikey.FromHeader(c.Get(fiber.HeaderAuthorization)); ok {
			c.Locals(tenant.LocalAPIKey, key)
		}
		return c.Next()
	}
}
