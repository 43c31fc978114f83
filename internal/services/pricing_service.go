package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/geoads/backend/internal/config"
	"github.com/geoads/backend/internal/events"
	"github.com/geoads/backend/internal/models"
	"github.com/geoads/backend/internal/pricing"
	"github.com/geoads/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PricingConfig is the reference-data bundle the client needs to render the
// campaign form and the quote tool.
type PricingConfig struct {
	Industries         []models.Industry     `json:"industries"`
	AdFormats          []models.AdFormat     `json:"ad_types"`
	Regions            []models.Region       `json:"states"`
	DiscountTiers      []models.DiscountTier `json:"discounts"`
	Currency           string                `json:"currency"`
	DefaultRadiusMiles float64               `json:"default_radius_miles"`
}

// QuoteRequest identifies the pricing inputs by reference-data id; the service
// hydrates them and runs the engine. Both the quick quote tool and the full
// campaign form go through here, so they cannot disagree.
type QuoteRequest struct {
	IndustryID      uuid.UUID
	AdFormatID      uuid.UUID
	CoverageType    string
	RegionID        *uuid.UUID
	CountryCode     string
	DurationMonths  int
	DisplayCurrency string
}

type PricingService struct {
	pricingRepo *repositories.PricingRepo
	regionRepo  *repositories.RegionRepo
	engine      *pricing.Engine
	rdb         *redis.Client
	publisher   events.Publisher
	cfg         *config.Config
	log         *zap.Logger
}

func NewPricingService(
	pricingRepo *repositories.PricingRepo,
	regionRepo *repositories.RegionRepo,
	engine *pricing.Engine,
	rdb *redis.Client,
	publisher events.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) *PricingService {
	return &PricingService{
		pricingRepo: pricingRepo,
		regionRepo:  regionRepo,
		engine:      engine,
		rdb:         rdb,
		publisher:   publisher,
		cfg:         cfg,
		log:         log,
	}
}

func configCacheKey(countryCode string) string {
	return "pricing:config:" + countryCode
}

// GetConfig returns the pricing reference data for a country, served from a
// short-lived redis cache. Cache misses fall through to postgres.
func (s *PricingService) GetConfig(ctx context.Context, countryCode string) (*PricingConfig, error) {
	key := configCacheKey(countryCode)
	if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var cfg PricingConfig
		if err := json.Unmarshal([]byte(cached), &cfg); err == nil {
			return &cfg, nil
		}
	}

	industries, err := s.pricingRepo.ListIndustries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load industries: %w", err)
	}
	formats, err := s.pricingRepo.ListAdFormats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ad formats: %w", err)
	}
	regions, err := s.regionRepo.ListByCountry(ctx, countryCode)
	if err != nil {
		return nil, fmt.Errorf("load regions: %w", err)
	}
	tiers, err := s.pricingRepo.ListDiscountTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load discount tiers: %w", err)
	}
	if len(tiers) == 0 {
		tiers = models.DefaultDiscountTiers
	}

	cfg := &PricingConfig{
		Industries:         industries,
		AdFormats:          formats,
		Regions:            regions,
		DiscountTiers:      tiers,
		Currency:           s.cfg.ReferenceCurrency,
		DefaultRadiusMiles: s.cfg.DefaultRadiusMiles,
	}

	if data, err := json.Marshal(cfg); err == nil {
		s.rdb.Set(ctx, key, data, s.cfg.PricingConfigCacheTTL)
	}
	return cfg, nil
}

// InvalidateConfig drops cached pricing config after an admin edit and tells
// connected clients to refetch.
func (s *PricingService) InvalidateConfig(ctx context.Context) {
	iter := s.rdb.Scan(ctx, 0, "pricing:config:*", 100).Iterator()
	for iter.Next(ctx) {
		s.rdb.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warn("pricing cache invalidation scan failed", zap.Error(err))
	}
	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type:    events.EventPricingConfigChanged,
		Payload: map[string]any{},
	})
}

// Quote hydrates the referenced reference data and runs the pricing engine.
func (s *PricingService) Quote(ctx context.Context, req QuoteRequest) (*pricing.Quote, error) {
	industry, err := s.pricingRepo.GetIndustry(ctx, req.IndustryID)
	if err != nil {
		return nil, fmt.Errorf("industry not found: %w", err)
	}
	format, err := s.pricingRepo.GetAdFormat(ctx, req.AdFormatID)
	if err != nil {
		return nil, fmt.Errorf("ad format not found: %w", err)
	}
	tiers, err := s.pricingRepo.ListDiscountTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load discount tiers: %w", err)
	}
	if len(tiers) == 0 {
		tiers = models.DefaultDiscountTiers
	}

	in := pricing.QuoteInput{
		BaseRate:           format.BaseRate,
		IndustryMultiplier: industry.Multiplier,
		CoverageType:       req.CoverageType,
		DurationMonths:     req.DurationMonths,
		DisplayCurrency:    req.DisplayCurrency,
		Tiers:              tiers,
	}

	switch req.CoverageType {
	case models.CoverageState:
		if req.RegionID == nil {
			return nil, &pricing.IncompleteInputError{Reason: "state coverage requires region_id"}
		}
		region, err := s.regionRepo.GetByID(ctx, *req.RegionID)
		if err != nil {
			return nil, fmt.Errorf("region not found: %w", err)
		}
		in.Region = region
	case models.CoverageNational:
		regions, err := s.regionRepo.ListByCountry(ctx, req.CountryCode)
		if err != nil {
			return nil, fmt.Errorf("load regions: %w", err)
		}
		in.Regions = regions
	}

	return s.engine.ComputeQuote(in)
}
