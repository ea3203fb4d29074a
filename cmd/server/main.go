package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/clinicpass/clinicpass-backend/internal/config"
	"github.com/clinicpass/clinicpass-backend/internal/database"
	"github.com/clinicpass/clinicpass-backend/internal/handlers"
	"github.com/clinicpass/clinicpass-backend/internal/logging"
	"github.com/clinicpass/clinicpass-backend/internal/middleware"
	"github.com/clinicpass/clinicpass-backend/internal/routes"
	"github.com/clinicpass/clinicpass-backend/internal/services"
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

	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewTeeHandler(logging.ConsoleHandler(), pgLogHandler)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	auditService := services.NewAuditService(database.DB)
	fieldService := services.NewFieldService(database.DB)
	formService := services.NewFormService(database.DB)
	qrService := services.NewQRService(database.DB, cfg.PublicBaseURL)
	profileService := services.NewProfileService(database.DB)
	providerService := services.NewProviderService(database.DB, authService)
	docusealService := services.NewDocusealService(cfg.DocusealAPIURL, cfg.DocusealAPIKey)

	var signing services.SigningClient
	if docusealService.Configured() {
		signing = docusealService
	} else {
		slog.Info("docuseal not configured, submissions skip signing")
	}
	submissionService := services.NewSubmissionService(database.DB, signing)

	// Seed the core field library (idempotent)
	if err := fieldService.SeedCoreLibrary(); err != nil {
		slog.Error("field library seed failed", "error", err)
		os.Exit(1)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	legalHandler := handlers.NewLegalHandler()
	fieldHandler := handlers.NewFieldHandler(fieldService, auditService)
	formHandler := handlers.NewFormHandler(formService, auditService)
	qrHandler := handlers.NewQRHandler(qrService, auditService)
	publicHandler := handlers.NewPublicHandler(qrService, formService, providerService, profileService, submissionService, auditService)
	profileHandler := handlers.NewProfileHandler(profileService, submissionService)
	providerHandler := handlers.NewProviderHandler(providerService, auditService)
	adminHandler := handlers.NewAdminHandler(providerService, auditService)
	webhookHandler := handlers.NewWebhookHandler(submissionService, cfg)

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

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
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

	// Routes
	routes.Setup(app, cfg, database.DB,
		authHandler, healthHandler, legalHandler, fieldHandler, formHandler,
		qrHandler, publicHandler, profileHandler, providerHandler, adminHandler,
		webhookHandler, providerService)

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

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
