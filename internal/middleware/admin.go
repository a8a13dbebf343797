package middleware

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StaffChecker interface {
	IsStaff(ctx context.Context, userID, gymID uuid.UUID) (bool, error)
}

// GymStaffRequired lets through JWT users who manage or train at the gym
// named by the :gym_id route parameter. Must run after JWTProtected.
func GymStaffRequired(staff StaffChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := tenant.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		gymID, err := uuid.Parse(c.Params("gym_id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid gym id",
			})
		}

		ok, err := staff.IsStaff(c.UserContext(), userID, gymID)
		if err != nil {
			slog.Error("staff check failed", "user_id", userID.String(), "gym_id", gymID.String(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Gym staff access required",
			})
		}
		return c.Next()
	}
}
