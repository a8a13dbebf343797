package handlers

import (
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/apikey"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves account registration for API callers.
type UserHandler struct {
	gate         *services.APIGate
	registration *services.RegistrationService
}

func NewUserHandler(gate *services.APIGate, registration *services.RegistrationService) *UserHandler {
	return &UserHandler{gate: gate, registration: registration}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	caller, err := h.gate.Authorize(c.UserContext(), requestAPIKey(c))
	if err != nil {
		return writeOutcome(c, err)
	}

	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Message("Invalid request body"))
	}

	_, err = h.registration.Register(c.UserContext(), caller, &req)
	return writeOutcome(c, err)
}

// List returns the accounts created with the caller's token.
func (h *UserHandler) List(c *fiber.Ctx) error {
	caller, err := h.gate.Resolve(c.UserContext(), requestAPIKey(c))
	if err != nil {
		return writeOutcome(c, err)
	}

	users, err := h.registration.ListCreatedBy(c.UserContext(), caller.TokenID)
	if err != nil {
		return writeOutcome(c, err)
	}

	return c.JSON(dto.UserListResponse{
		Count: len(users),
		Users: services.ToUserResponses(users),
	})
}

// requestAPIKey prefers the key resolved by APITokenAuth and falls back to
// parsing the Authorization header directly.
func requestAPIKey(c *fiber.Ctx) string {
	if key, ok := tenant.GetAPIKey(c); ok {
		return key
	}
	key, _ := apikey.FromHeader(c.Get(fiber.HeaderAuthorization))
	return key
}
