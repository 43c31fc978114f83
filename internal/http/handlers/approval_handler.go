package handlers

import (
	"strconv"

	"github.com/geoads/backend/internal/http/dto"
	"github.com/geoads/backend/internal/landing"
	"github.com/geoads/backend/internal/middleware"
	"github.com/geoads/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApprovalHandler struct {
	campaignService *services.CampaignService
	landingParser   *landing.Parser
	log             *zap.Logger
}

func NewApprovalHandler(campaignService *services.CampaignService, landingParser *landing.Parser, log *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{campaignService: campaignService, landingParser: landingParser, log: log}
}

// SubmitForReview moves an advertiser's draft into the review queue.
func (h *ApprovalHandler) SubmitForReview(c *fiber.Ctx) error {
	var req dto.SubmitForReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign_id"})
	}

	userID := middleware.GetUserID(c)
	campaign, err := h.campaignService.SubmitForReview(c.Context(), campaignID, userID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

// ReviewQueue lists submitted and in-review campaigns for admins.
func (h *ApprovalHandler) ReviewQueue(c *fiber.Ctx) error {
	limit, offset := 50, 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	campaigns, err := h.campaignService.ReviewQueue(c.Context(), limit, offset)
	if err != nil {
		h.log.Error("load review queue failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

// ClaimForReview pulls a submitted campaign into in_review under the admin's name.
func (h *ApprovalHandler) ClaimForReview(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	adminID := middleware.GetUserID(c)
	campaign, err := h.campaignService.ClaimForReview(c.Context(), campaignID, &adminID, "admin")
	if err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

// Decide applies an approve / reject / request_changes decision to an
// in-review campaign.
func (h *ApprovalHandler) Decide(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	var req dto.AdminDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	adminID := middleware.GetUserID(c)
	campaign, err := h.campaignService.ApplyAdminDecision(c.Context(), campaignID, adminID, req.Action, req.Message)
	if err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

// LandingPreview fetches the campaign's landing page metadata so reviewers can
// inspect the destination without leaving the dashboard.
func (h *ApprovalHandler) LandingPreview(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	campaign, err := h.campaignService.GetByID(c.Context(), campaignID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}

	preview, err := h.landingParser.FetchPreview(c.Context(), campaign.LandingURL)
	if err != nil {
		h.log.Warn("landing preview fetch failed",
			zap.String("campaign_id", campaignID.String()),
			zap.String("url", campaign.LandingURL),
			zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "landing page could not be fetched"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: preview})
}
