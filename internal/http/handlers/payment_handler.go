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

type PaymentHandler struct {
	paymentService *services.PaymentService
	log            *zap.Logger
}

func NewPaymentHandler(paymentService *services.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, log: log}
}

// CreateCheckoutSession opens a hosted checkout for an approved campaign.
func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Query("campaign_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign_id"})
	}

	userID := middleware.GetUserID(c)
	session, err := h.paymentService.CreateCheckoutSession(c.Context(), campaignID, userID, c.Query("currency"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: dto.CheckoutSessionResponse{
		SessionID:   session.ID.String(),
		CheckoutURL: session.CheckoutURL,
		Amount:      session.Amount,
		Currency:    session.Currency,
		Status:      session.Status,
	}})
}

// Webhook receives payment status callbacks from the checkout provider. The
// request body is verified against the shared webhook secret before any state
// changes.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	body := c.Body()
	if !h.paymentService.VerifyWebhookSignature(body, c.Get("X-Webhook-Signature")) {
		h.log.Warn("webhook signature mismatch", zap.String("ip", c.IP()))
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid signature"})
	}

	var req dto.PaymentWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "session_id is required"})
	}

	if req.Status != models.CheckoutStatusPaid {
		// Failed or cancelled checkouts leave the session pending; the worker
		// expires it after the TTL.
		return c.JSON(dto.SuccessResponse{OK: true})
	}

	if err := h.paymentService.HandlePaymentConfirmed(c.Context(), req.SessionID); err != nil {
		h.log.Error("payment confirmation failed", zap.String("session_id", req.SessionID), zap.Error(err))
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}
