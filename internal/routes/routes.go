package routes

import (
	"time"

	"github.com/clinicpass/clinicpass-backend/internal/config"
	"github.com/clinicpass/clinicpass-backend/internal/handlers"
	"github.com/clinicpass/clinicpass-backend/internal/middleware"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	legalHandler *handlers.LegalHandler,
	fieldHandler *handlers.FieldHandler,
	formHandler *handlers.FormHandler,
	qrHandler *handlers.QRHandler,
	publicHandler *handlers.PublicHandler,
	profileHandler *handlers.ProfileHandler,
	providerHandler *handlers.ProviderHandler,
	adminHandler *handlers.AdminHandler,
	webhookHandler *handlers.WebhookHandler,
	providerService *services.ProviderService,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP. Kiosk tablets share an
	// IP, so this is looser than a consumer API would be.
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health
	api.Get("/health", healthHandler.Check)

	// Legal pages
	api.Get("/legal/privacy", legalHandler.PrivacyPolicy)
	api.Get("/legal/terms", legalHandler.TermsOfService)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes - apply middleware per route so the public
	// auth group stays public
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Public check-in flow — optional JWT for prefill; anonymous allowed
	public := api.Group("/public", middleware.JWTOptional(cfg))
	public.Get("/forms/:shortCode", publicHandler.GetForm)
	public.Post("/forms/:shortCode/submit", publicHandler.Submit)

	// Patient routes (JWT required)
	me := api.Group("/me", middleware.JWTProtected(cfg))
	me.Get("/profile", profileHandler.Get)
	me.Patch("/profile", profileHandler.Update)
	me.Post("/profile/sync", profileHandler.Sync)
	me.Get("/submissions/:id", profileHandler.GetSubmission)
	me.Post("/submissions/claim", publicHandler.Claim)

	// Provider registration — public (no account exists yet)
	api.Post("/provider/save-registration", providerHandler.SaveRegistration)
	api.Post("/provider/complete-registration", providerHandler.CompleteRegistration)

	// Provider membership status — JWT only, no approved-org requirement,
	// so pending providers can poll their review status
	api.Get("/provider/me", middleware.JWTProtected(cfg), providerHandler.Me)

	// Provider organization routes (JWT + approved org membership)
	provider := api.Group("/provider", middleware.JWTProtected(cfg), middleware.OrgMember(providerService))
	provider.Get("/settings", providerHandler.GetSettings)
	provider.Patch("/settings", providerHandler.UpdateSettings)

	provider.Get("/forms", formHandler.List)
	provider.Post("/forms", formHandler.Create)
	provider.Get("/forms/:id", formHandler.Get)
	provider.Patch("/forms/:id", formHandler.Update)
	provider.Delete("/forms/:id", formHandler.Delete)
	provider.Put("/forms/:id/docuseal", formHandler.SetDocusealMapping)

	provider.Get("/forms/:formId/qr", qrHandler.List)
	provider.Post("/forms/:formId/qr", qrHandler.Create)
	provider.Patch("/forms/:formId/qr/:qrId", qrHandler.Update)
	provider.Delete("/forms/:formId/qr/:qrId", qrHandler.Delete)
	provider.Get("/forms/:formId/qr/:qrId/image", qrHandler.Image)

	// Admin panel (JWT + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/fields", fieldHandler.List)
	admin.Post("/fields", fieldHandler.Create)
	admin.Get("/fields/:id", fieldHandler.Get)
	admin.Patch("/fields/:id", fieldHandler.Update)
	admin.Delete("/fields/:id", fieldHandler.Delete)
	admin.Post("/fields/reorder", fieldHandler.Reorder)

	admin.Get("/providers", adminHandler.ListProviders)
	admin.Put("/providers/:id/review", adminHandler.ReviewProvider)

	admin.Get("/audit", adminHandler.ListAuditLogs)
	admin.Get("/audit/export", adminHandler.ExportAuditLogs)

	// Webhooks — shared-secret auth, no JWT
	webhooks := api.Group("/webhooks")
	webhooks.Post("/docuseal", webhookHandler.HandleDocuseal)
}
