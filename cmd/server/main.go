package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/redis/go-redis/v9"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/quota"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	if err := database.SeedRoles(database.DB); err != nil {
		slog.Error("seeding roles failed", "error", err)
		os.Exit(1)
	}

	// system_logs sink (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	logging.AttachSink(pgLogHandler)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Quota backend
	var tracker quota.Tracker
	var rdb *redis.Client
	switch cfg.QuotaBackend {
	case "redis":
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Error("redis connection failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		tracker = quota.NewRedisTracker(rdb, cfg.QuotaWindow)
	case "db":
		tracker = quota.NewDBTracker(database.DB, cfg.QuotaWindow)
	default:
		slog.Error("unknown QUOTA_BACKEND", "value", cfg.QuotaBackend)
		os.Exit(1)
	}
	slog.Info("quota tracker ready", "backend", cfg.QuotaBackend, "window", cfg.QuotaWindow.String())

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	gate := services.NewAPIGate(database.DB)
	registrationService := services.NewRegistrationService(database.DB, tracker)
	rosterService := services.NewRosterService(database.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(database.Ping)
	userHandler := handlers.NewUserHandler(gate, registrationService)
	rosterHandler := handlers.NewRosterHandler(rosterService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, authHandler, healthHandler, userHandler, rosterHandler, rosterService)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
