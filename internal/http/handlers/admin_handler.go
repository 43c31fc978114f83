package handlers

import (
	"github.com/geoads/backend/internal/http/dto"
	"github.com/geoads/backend/internal/middleware"
	"github.com/geoads/backend/internal/models"
	"github.com/geoads/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler exposes the pricing configuration surface: regions,
// industries, ad formats and discount tiers. Every write invalidates the
// cached pricing config.
type AdminHandler struct {
	adminService *services.AdminService
	log          *zap.Logger
}

func NewAdminHandler(adminService *services.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, log: log}
}

func (h *AdminHandler) ListRegions(c *fiber.Ctx) error {
	regions, err := h.adminService.ListRegions(c.Context(), c.Query("country_code"))
	if err != nil {
		h.log.Error("list regions failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: regions})
}

func (h *AdminHandler) CreateRegion(c *fiber.Ctx) error {
	var req dto.RegionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	region := &models.Region{
		Name:              req.Name,
		StateCode:         req.StateCode,
		CountryCode:       req.CountryCode,
		Population:        req.Population,
		LandAreaSqMi:      req.LandAreaSqMi,
		DensityMultiplier: req.DensityMultiplier,
	}
	if err := h.adminService.CreateRegion(c.Context(), middleware.GetUserID(c), region); err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: region})
}

func (h *AdminHandler) UpdateRegion(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid region id"})
	}

	var req dto.RegionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	region := &models.Region{
		ID:                id,
		Name:              req.Name,
		StateCode:         req.StateCode,
		CountryCode:       req.CountryCode,
		Population:        req.Population,
		LandAreaSqMi:      req.LandAreaSqMi,
		DensityMultiplier: req.DensityMultiplier,
	}
	if err := h.adminService.UpdateRegion(c.Context(), middleware.GetUserID(c), region); err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: region})
}

func (h *AdminHandler) CreateIndustry(c *fiber.Ctx) error {
	var req dto.IndustryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	ind := &models.Industry{Name: req.Name, Multiplier: req.Multiplier}
	if err := h.adminService.CreateIndustry(c.Context(), middleware.GetUserID(c), ind); err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: ind})
}

func (h *AdminHandler) UpdateIndustry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid industry id"})
	}

	var req dto.IndustryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	ind := &models.Industry{ID: id, Name: req.Name, Multiplier: req.Multiplier}
	if err := h.adminService.UpdateIndustry(c.Context(), middleware.GetUserID(c), ind); err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: ind})
}

func (h *AdminHandler) CreateAdFormat(c *fiber.Ctx) error {
	var req dto.AdFormatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	format := &models.AdFormat{Name: req.Name, BaseRate: req.BaseRate}
	if err := h.adminService.CreateAdFormat(c.Context(), middleware.GetUserID(c), format); err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: format})
}

func (h *AdminHandler) UpdateAdFormat(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid ad format id"})
	}

	var req dto.AdFormatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	format := &models.AdFormat{ID: id, Name: req.Name, BaseRate: req.BaseRate}
	if err := h.adminService.UpdateAdFormat(c.Context(), middleware.GetUserID(c), format); err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: format})
}

func (h *AdminHandler) SetDiscountTiers(c *fiber.Ctx) error {
	var req dto.DiscountTiersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	tiers := make([]models.DiscountTier, 0, len(req.Tiers))
	for _, t := range req.Tiers {
		tiers = append(tiers, models.DiscountTier{DurationMonths: t.DurationMonths, Rate: t.Rate})
	}
	if err := h.adminService.SetDiscountTiers(c.Context(), middleware.GetUserID(c), tiers); err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: tiers})
}
