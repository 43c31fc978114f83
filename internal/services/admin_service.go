package services

import (
	"context"

	"github.com/geoads/backend/internal/models"
	"github.com/geoads/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService mutates the pricing reference data: regions, industries, ad
// formats and discount tiers. Every write invalidates the cached pricing
// config so clients re-quote against fresh data.
type AdminService struct {
	pricingRepo    *repositories.PricingRepo
	regionRepo     *repositories.RegionRepo
	auditRepo      *repositories.AuditRepo
	pricingService *PricingService
	log            *zap.Logger
}

func NewAdminService(
	pricingRepo *repositories.PricingRepo,
	regionRepo *repositories.RegionRepo,
	auditRepo *repositories.AuditRepo,
	pricingService *PricingService,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		pricingRepo:    pricingRepo,
		regionRepo:     regionRepo,
		auditRepo:      auditRepo,
		pricingService: pricingService,
		log:            log,
	}
}

func (s *AdminService) validateRegion(region *models.Region) error {
	if region.Name == "" || region.CountryCode == "" {
		return &models.ValidationError{Field: "name", Reason: "name and country_code are required"}
	}
	if region.Population <= 0 {
		return &models.ValidationError{Field: "population", Reason: "population must be positive"}
	}
	if region.LandAreaSqMi <= 0 {
		return &models.ValidationError{Field: "land_area", Reason: "land area must be positive"}
	}
	return nil
}

func (s *AdminService) CreateRegion(ctx context.Context, adminID uuid.UUID, region *models.Region) error {
	if err := s.validateRegion(region); err != nil {
		return err
	}
	region.DensityMultiplier = models.ClampDensityMultiplier(region.DensityMultiplier)

	if err := s.regionRepo.Create(ctx, region); err != nil {
		return err
	}
	s.afterWrite(ctx, adminID, "region_created", "region", region.ID)
	return nil
}

func (s *AdminService) UpdateRegion(ctx context.Context, adminID uuid.UUID, region *models.Region) error {
	if err := s.validateRegion(region); err != nil {
		return err
	}
	region.DensityMultiplier = models.ClampDensityMultiplier(region.DensityMultiplier)

	if err := s.regionRepo.Update(ctx, region); err != nil {
		return err
	}
	s.afterWrite(ctx, adminID, "region_updated", "region", region.ID)
	return nil
}

func (s *AdminService) ListRegions(ctx context.Context, countryCode string) ([]models.Region, error) {
	return s.regionRepo.ListByCountry(ctx, countryCode)
}

func (s *AdminService) CreateIndustry(ctx context.Context, adminID uuid.UUID, ind *models.Industry) error {
	if ind.Multiplier < 0 {
		return &models.ValidationError{Field: "multiplier", Reason: "multiplier must be >= 0"}
	}
	if err := s.pricingRepo.CreateIndustry(ctx, ind); err != nil {
		return err
	}
	s.afterWrite(ctx, adminID, "industry_created", "industry", ind.ID)
	return nil
}

func (s *AdminService) UpdateIndustry(ctx context.Context, adminID uuid.UUID, ind *models.Industry) error {
	if ind.Multiplier < 0 {
		return &models.ValidationError{Field: "multiplier", Reason: "multiplier must be >= 0"}
	}
	if err := s.pricingRepo.UpdateIndustry(ctx, ind); err != nil {
		return err
	}
	s.afterWrite(ctx, adminID, "industry_updated", "industry", ind.ID)
	return nil
}

func (s *AdminService) CreateAdFormat(ctx context.Context, adminID uuid.UUID, f *models.AdFormat) error {
	if f.BaseRate < 0 {
		return &models.ValidationError{Field: "base_rate", Reason: "base rate must be >= 0"}
	}
	if err := s.pricingRepo.CreateAdFormat(ctx, f); err != nil {
		return err
	}
	s.afterWrite(ctx, adminID, "ad_format_created", "ad_format", f.ID)
	return nil
}

func (s *AdminService) UpdateAdFormat(ctx context.Context, adminID uuid.UUID, f *models.AdFormat) error {
	if f.BaseRate < 0 {
		return &models.ValidationError{Field: "base_rate", Reason: "base rate must be >= 0"}
	}
	if err := s.pricingRepo.UpdateAdFormat(ctx, f); err != nil {
		return err
	}
	s.afterWrite(ctx, adminID, "ad_format_updated", "ad_format", f.ID)
	return nil
}

func (s *AdminService) SetDiscountTiers(ctx context.Context, adminID uuid.UUID, tiers []models.DiscountTier) error {
	for _, t := range tiers {
		if t.Rate < 0 || t.Rate >= 1 {
			return &models.ValidationError{Field: "rate", Reason: "discount rate must be in [0, 1)"}
		}
		if err := s.pricingRepo.UpsertDiscountTier(ctx, t); err != nil {
			return err
		}
	}
	s.afterWrite(ctx, adminID, "discount_tiers_updated", "discount_tier", uuid.Nil)
	return nil
}

func (s *AdminService) afterWrite(ctx context.Context, adminID uuid.UUID, action, entityType string, entityID uuid.UUID) {
	var idPtr *uuid.UUID
	if entityID != uuid.Nil {
		idPtr = &entityID
	}
	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &adminID,
		ActorType:   "admin",
		Action:      action,
		EntityType:  entityType,
		EntityID:    idPtr,
	})
	s.pricingService.InvalidateConfig(ctx)
}
