package handlers

import (
	"github.com/geoads/backend/internal/http/dto"
	"github.com/geoads/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PricingHandler struct {
	pricingService *services.PricingService
	log            *zap.Logger
}

func NewPricingHandler(pricingService *services.PricingService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{pricingService: pricingService, log: log}
}

func (h *PricingHandler) GetConfig(c *fiber.Ctx) error {
	countryCode := c.Query("country_code")
	if countryCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "country_code is required"})
	}

	cfg, err := h.pricingService.GetConfig(c.Context(), countryCode)
	if err != nil {
		h.log.Error("load pricing config failed", zap.String("country_code", countryCode), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: cfg})
}

func (h *PricingHandler) Quote(c *fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	industryID, err := uuid.Parse(req.IndustryID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid industry_id"})
	}
	adFormatID, err := uuid.Parse(req.AdFormatID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid ad_format_id"})
	}

	quoteReq := services.QuoteRequest{
		IndustryID:      industryID,
		AdFormatID:      adFormatID,
		CoverageType:    req.CoverageType,
		CountryCode:     req.CountryCode,
		DurationMonths:  req.DurationMonths,
		DisplayCurrency: req.Currency,
	}
	if req.RegionID != nil {
		regionID, err := uuid.Parse(*req.RegionID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid region_id"})
		}
		quoteReq.RegionID = &regionID
	}

	quote, err := h.pricingService.Quote(c.Context(), quoteReq)
	if err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: quote})
}
