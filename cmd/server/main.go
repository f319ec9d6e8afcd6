package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.IsProduction())

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Cache store (exercised by the health probe)
	store, err := cache.Connect(cfg.RedisURL)
	if err != nil {
		slog.Error("cache connection failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout, cfg.IsProduction()),
		dbLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Services
	authService := services.NewAuthService(db, cfg)
	donationService := services.NewDonationService(db, cfg.DonationRedirectURL)
	eventService := services.NewEventService(db, services.NewContentFilter(services.DefaultBannedWords))
	adminLogger := services.NewAdminLogger(db)

	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Health:     handlers.NewHealthHandler(db, store),
		Donation:   handlers.NewDonationHandler(donationService, authService),
		Admin:      handlers.NewAdminHandler(eventService, adminLogger, authService),
		Event:      handlers.NewEventHandler(eventService),
		Inventory:  handlers.NewInventoryHandler(services.NewInventoryService(db)),
		Donor:      handlers.NewDonorHandler(services.NewDonorService(db)),
		Newsletter: handlers.NewNewsletterHandler(services.NewNewsletterService(db)),
		Webhook:    handlers.NewWebhookHandler(donationService, cfg.PaymentWebhookSecret),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
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
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, authService, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := store.Close(); err != nil {
		slog.Error("cache close error", "error", err)
	}
	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
