package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/quota"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

const MsgUserRegistered = "User successfully registered"

// registrationOutcome maps the result of an API registration to its status
// code and message.
func registrationOutcome(err error) (int, string) {
	switch {
	case err == nil:
		return fiber.StatusOK, MsgUserRegistered
	case errors.Is(err, services.ErrUnauthenticated):
		return fiber.StatusForbidden, "API Authorization data required"
	case errors.Is(err, services.ErrInvalidCredential):
		return fiber.StatusForbidden, "Invalid API Authorization data"
	case errors.Is(err, services.ErrForbidden), errors.Is(err, quota.ErrExceeded):
		return fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrUsernameTaken):
		return fiber.StatusConflict, "Username already exists"
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

func writeOutcome(c *fiber.Ctx, err error) error {
	status, msg := registrationOutcome(err)
	if status >= fiber.StatusInternalServerError {
		slog.Error("api user request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(dto.Message(msg))
}
