package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	rosterHandler *handlers.RosterHandler,
	staff middleware.StaffChecker,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)

	api.Get("/userprofile", middleware.JWTProtected(cfg), authHandler.Profile)

	// API token callers; per-caller quota is enforced by the registration service
	users := api.Group("/users", middleware.APITokenAuth())
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)

	// Gym rosters (JWT + staff of that gym)
	gyms := api.Group("/gyms/:gym_id", middleware.JWTProtected(cfg), middleware.GymStaffRequired(staff))
	gyms.Get("/members", rosterHandler.Members)
	gyms.Get("/admins", rosterHandler.Admins)
}
