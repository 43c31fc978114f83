package http

import (
	"time"

	"github.com/geoads/backend/internal/config"
	"github.com/geoads/backend/internal/http/handlers"
	"github.com/geoads/backend/internal/middleware"
	"github.com/geoads/backend/internal/rbac"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	metaHandler *handlers.MetaHandler,
	pricingHandler *handlers.PricingHandler,
	campaignHandler *handlers.CampaignHandler,
	approvalHandler *handlers.ApprovalHandler,
	paymentHandler *handlers.PaymentHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Payment provider webhook (public, HMAC-verified)
	api.Post("/payments/webhook", paymentHandler.Webhook)

	// Rate-limited public endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Meta (public, no auth required)
	api.Get("/meta/countries", metaHandler.ListCountries)
	api.Get("/meta/currencies", metaHandler.ListCurrencies)

	// Pricing (public: the dashboard quotes before sign-up)
	api.Get("/pricing/config", pricingHandler.GetConfig)
	api.Post("/pricing/quote", pricingHandler.Quote)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// User
	protected.Get("/me", userHandler.GetMe)

	// Campaigns
	protected.Post("/campaigns", middleware.RequirePermission(rbac.PermCreateCampaign), campaignHandler.CreateCampaign)
	protected.Get("/campaigns", campaignHandler.ListCampaigns)
	protected.Get("/campaigns/:id", campaignHandler.GetCampaign)
	protected.Put("/campaigns/:id", campaignHandler.UpdateCampaign)
	protected.Delete("/campaigns/:id", campaignHandler.DeleteCampaign)
	protected.Get("/campaigns/:id/history", campaignHandler.GetHistory)
	protected.Get("/campaigns/:id/stats", campaignHandler.GetStats)
	protected.Post("/campaigns/:id/pause", campaignHandler.PauseCampaign)
	protected.Post("/campaigns/:id/resume", campaignHandler.ResumeCampaign)
	protected.Post("/campaigns/:id/complete", campaignHandler.CompleteCampaign)

	// Review intake
	protected.Post("/campaigns/submit", middleware.RequirePermission(rbac.PermSubmitCampaign), approvalHandler.SubmitForReview)

	// Payments
	protected.Post("/payments/checkout-session", middleware.RequirePermission(rbac.PermActivateCampaign), paymentHandler.CreateCheckoutSession)

	// Notifications
	protected.Get("/notifications", notificationHandler.List)
	protected.Post("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.Post("/notifications/:id/read", notificationHandler.MarkRead)

	// Admin: review workflow + pricing configuration
	admin := protected.Group("/admin", middleware.AdminMiddleware())
	admin.Get("/review-queue", approvalHandler.ReviewQueue)
	admin.Post("/campaigns/:id/claim", middleware.RequirePermission(rbac.PermReviewCampaign), approvalHandler.ClaimForReview)
	admin.Post("/campaigns/:id/decision", middleware.RequirePermission(rbac.PermReviewCampaign), approvalHandler.Decide)
	admin.Get("/campaigns/:id/landing-preview", approvalHandler.LandingPreview)
	admin.Get("/regions", adminHandler.ListRegions)
	admin.Post("/regions", middleware.RequirePermission(rbac.PermManageRegions), adminHandler.CreateRegion)
	admin.Put("/regions/:id", middleware.RequirePermission(rbac.PermManageRegions), adminHandler.UpdateRegion)
	admin.Post("/industries", middleware.RequirePermission(rbac.PermConfigurePricing), adminHandler.CreateIndustry)
	admin.Put("/industries/:id", middleware.RequirePermission(rbac.PermConfigurePricing), adminHandler.UpdateIndustry)
	admin.Post("/ad-formats", middleware.RequirePermission(rbac.PermConfigurePricing), adminHandler.CreateAdFormat)
	admin.Put("/ad-formats/:id", middleware.RequirePermission(rbac.PermConfigurePricing), adminHandler.UpdateAdFormat)
	admin.Put("/discount-tiers", middleware.RequirePermission(rbac.PermConfigurePricing), adminHandler.SetDiscountTiers)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
