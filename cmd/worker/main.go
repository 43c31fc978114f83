package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geoads/backend/internal/config"
	"github.com/geoads/backend/internal/currency"
	"github.com/geoads/backend/internal/db"
	"github.com/geoads/backend/internal/events"
	"github.com/geoads/backend/internal/models"
	"github.com/geoads/backend/internal/pricing"
	"github.com/geoads/backend/internal/repositories"
	"github.com/geoads/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repos
	userRepo := repositories.NewUserRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	regionRepo := repositories.NewRegionRepo(pool)
	pricingRepo := repositories.NewPricingRepo(pool)
	checkoutRepo := repositories.NewCheckoutRepo(pool)
	notificationRepo := repositories.NewNotificationRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)
	statsRepo := repositories.NewStatsRepo(pool)

	// Services
	publisher := events.NewRedisPublisher(rdb, log)
	converter := currency.NewConverter(currency.DefaultRates())
	engine := pricing.NewEngine(converter, cfg.ReferenceCurrency, cfg.DefaultRadiusMiles)
	pricingService := services.NewPricingService(pricingRepo, regionRepo, engine, rdb, publisher, cfg, log)
	notificationService := services.NewNotificationService(notificationRepo, publisher, log)
	campaignService := services.NewCampaignService(campaignRepo, userRepo, auditRepo, statsRepo, pricingService, notificationService, publisher, cfg, log)
	checkoutClient := services.NewCheckoutClient(cfg.CheckoutProviderURL, log)
	paymentService := services.NewPaymentService(checkoutRepo, campaignService, auditRepo, checkoutClient, converter, publisher, cfg, log)

	log.Info("worker started")

	ticker := time.NewTicker(cfg.WorkerTickInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			runReviewIntake(ctx, campaignRepo, campaignService, cfg, log)
			runCampaignCompletion(ctx, campaignRepo, campaignService, log)
			paymentService.ExpireStaleSessions(ctx)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

// runReviewIntake moves submissions that have sat unclaimed past the intake
// delay into in_review, so the queue keeps moving outside admin hours.
func runReviewIntake(ctx context.Context, campaignRepo *repositories.CampaignRepo, campaignService *services.CampaignService, cfg *config.Config, log *zap.Logger) {
	campaigns, err := campaignRepo.ListStale(ctx, models.CampaignStatusSubmitted, cfg.ReviewIntakeDelay)
	if err != nil {
		log.Error("failed to list stale submissions", zap.Error(err))
		return
	}

	for _, campaign := range campaigns {
		log.Info("auto-claiming stale submission", zap.String("campaign_id", campaign.ID.String()))
		if _, err := campaignService.ClaimForReview(ctx, campaign.ID, nil, "system"); err != nil {
			log.Error("failed to claim campaign", zap.String("campaign_id", campaign.ID.String()), zap.Error(err))
		}
	}
}

// runCampaignCompletion closes active campaigns whose committed duration has
// elapsed.
func runCampaignCompletion(ctx context.Context, campaignRepo *repositories.CampaignRepo, campaignService *services.CampaignService, log *zap.Logger) {
	campaigns, err := campaignRepo.ListEnded(ctx)
	if err != nil {
		log.Error("failed to list ended campaigns", zap.Error(err))
		return
	}

	for _, campaign := range campaigns {
		log.Info("completing ended campaign", zap.String("campaign_id", campaign.ID.String()))
		if _, err := campaignService.Complete(ctx, campaign.ID, nil, "system"); err != nil {
			log.Error("failed to complete campaign", zap.String("campaign_id", campaign.ID.String()), zap.Error(err))
		}
	}
}
