package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/geoads/backend/internal/config"
	"github.com/geoads/backend/internal/currency"
	"github.com/geoads/backend/internal/db"
	"github.com/geoads/backend/internal/events"
	apphttp "github.com/geoads/backend/internal/http"
	"github.com/geoads/backend/internal/http/handlers"
	"github.com/geoads/backend/internal/landing"
	"github.com/geoads/backend/internal/pricing"
	"github.com/geoads/backend/internal/repositories"
	"github.com/geoads/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	regionRepo := repositories.NewRegionRepo(pool)
	pricingRepo := repositories.NewPricingRepo(pool)
	checkoutRepo := repositories.NewCheckoutRepo(pool)
	notificationRepo := repositories.NewNotificationRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)
	statsRepo := repositories.NewStatsRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Pricing core
	converter := currency.NewConverter(currency.DefaultRates())
	engine := pricing.NewEngine(converter, cfg.ReferenceCurrency, cfg.DefaultRadiusMiles)

	// Services
	pricingService := services.NewPricingService(pricingRepo, regionRepo, engine, rdb, publisher, cfg, log)
	notificationService := services.NewNotificationService(notificationRepo, publisher, log)
	campaignService := services.NewCampaignService(campaignRepo, userRepo, auditRepo, statsRepo, pricingService, notificationService, publisher, cfg, log)
	checkoutClient := services.NewCheckoutClient(cfg.CheckoutProviderURL, log)
	paymentService := services.NewPaymentService(checkoutRepo, campaignService, auditRepo, checkoutClient, converter, publisher, cfg, log)
	adminService := services.NewAdminService(pricingRepo, regionRepo, auditRepo, pricingService, log)
	landingParser := landing.NewParser(10000, 2, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	userHandler := handlers.NewUserHandler(userRepo, log)
	metaHandler := handlers.NewMetaHandler(regionRepo, converter, log)
	pricingHandler := handlers.NewPricingHandler(pricingService, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	approvalHandler := handlers.NewApprovalHandler(campaignService, landingParser, log)
	paymentHandler := handlers.NewPaymentHandler(paymentService, log)
	notificationHandler := handlers.NewNotificationHandler(notificationService, log)
	adminHandler := handlers.NewAdminHandler(adminService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb,
		authHandler, userHandler, metaHandler, pricingHandler, campaignHandler,
		approvalHandler, paymentHandler, notificationHandler, adminHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
