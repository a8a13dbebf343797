package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RosterHandler struct {
	roster *services.RosterService
}

func NewRosterHandler(roster *services.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

func (h *RosterHandler) Members(c *fiber.Ctx) error {
	return h.list(c, h.roster.Members)
}

func (h *RosterHandler) Admins(c *fiber.Ctx) error {
	return h.list(c, h.roster.Admins)
}

func (h *RosterHandler) list(c *fiber.Ctx, load func(context.Context, uuid.UUID, string) ([]models.User, error)) error {
	gymID, err := uuid.Parse(c.Params("gym_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid gym id",
		})
	}

	status := c.Query("status")
	users, err := load(c.UserContext(), gymID, status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("roster lookup failed", "gym_id", gymID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load roster",
		})
	}

	if status == "" {
		status = services.StatusActive
	}
	return c.JSON(dto.RosterResponse{
		GymID:  gymID,
		Status: status,
		Users:  services.ToUserResponses(users),
	})
}
