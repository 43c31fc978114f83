package handlers

import (
	"github.com/geoads/backend/internal/currency"
	"github.com/geoads/backend/internal/http/dto"
	"github.com/geoads/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MetaHandler serves the small reference lists the dashboard needs before a
// user is signed in.
type MetaHandler struct {
	regionRepo *repositories.RegionRepo
	converter  *currency.Converter
	log        *zap.Logger
}

func NewMetaHandler(regionRepo *repositories.RegionRepo, converter *currency.Converter, log *zap.Logger) *MetaHandler {
	return &MetaHandler{regionRepo: regionRepo, converter: converter, log: log}
}

func (h *MetaHandler) ListCountries(c *fiber.Ctx) error {
	countries, err := h.regionRepo.ListCountries(c.Context())
	if err != nil {
		h.log.Error("list countries failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: countries})
}

func (h *MetaHandler) ListCurrencies(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: h.converter.Supported()})
}
