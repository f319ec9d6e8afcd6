package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Donation   *handlers.DonationHandler
	Admin      *handlers.AdminHandler
	Event      *handlers.EventHandler
	Inventory  *handlers.InventoryHandler
	Donor      *handlers.DonorHandler
	Newsletter *handlers.NewsletterHandler
	Webhook    *handlers.WebhookHandler
}

func ipLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

// Authenticator is implemented by services.AuthService.
type Authenticator interface {
	middleware.AdminVerifier
	middleware.UserChecker
}

func Setup(app *fiber.App, cfg *config.Config, auth Authenticator, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(ipLimiter(60))

	api.Get("/health", h.Health.Check)

	// Auth-specific rate limit: 10 req/min per IP
	api.Post("/auth/login", ipLimiter(10), h.Auth.Login)

	// Donations verify their own bearer token; it is optional except for intents.
	api.Post("/donations/monetary/intent", h.Donation.RecordIntent)
	api.Post("/donations/monetary", h.Donation.CreateMonetary)
	api.Post("/donations/items", h.Donation.CreateItem)

	api.Get("/donors", h.Donor.List)
	api.Get("/donors/leaderboard", h.Donor.Leaderboard)

	api.Get("/inventory", h.Inventory.List)
	api.Get("/inventory/filters", h.Inventory.Filters)

	api.Get("/events", h.Event.List)
	api.Get("/events/:id", h.Event.Get)
	member := []fiber.Handler{middleware.JWTProtected(cfg), middleware.ActiveUser(auth)}
	api.Post("/events/:id/comments", append(member, h.Event.AddComment)...)
	api.Post("/events/:id/like", append(member, h.Event.ToggleLike)...)

	api.Post("/newsletter", h.Newsletter.Subscribe)
	api.Delete("/newsletter", h.Newsletter.Unsubscribe)

	// Payment processor callback, authenticated by shared secret (no JWT)
	api.Post("/webhooks/payments", h.Webhook.HandlePayment)

	admin := api.Group("/admin", middleware.AdminSecurityHeaders())
	// The id is optional in the pattern so a missing id reaches the handler.
	admin.Delete("/events/:id?", h.Admin.DeleteEvent)
	admin.Post("/events", middleware.AdminRequired(auth), h.Admin.CreateEvent)
	admin.Get("/logs", middleware.AdminRequired(auth), h.Admin.ListLogs)
}
