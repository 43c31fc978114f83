package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/geoads/backend/internal/config"
	"github.com/geoads/backend/internal/currency"
	"github.com/geoads/backend/internal/events"
	"github.com/geoads/backend/internal/models"
	"github.com/geoads/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService struct {
	checkoutRepo    *repositories.CheckoutRepo
	campaignService *CampaignService
	auditRepo       *repositories.AuditRepo
	client          *CheckoutClient
	converter       *currency.Converter
	publisher       events.Publisher
	cfg             *config.Config
	log             *zap.Logger
}

func NewPaymentService(
	checkoutRepo *repositories.CheckoutRepo,
	campaignService *CampaignService,
	auditRepo *repositories.AuditRepo,
	client *CheckoutClient,
	converter *currency.Converter,
	publisher events.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		checkoutRepo:    checkoutRepo,
		campaignService: campaignService,
		auditRepo:       auditRepo,
		client:          client,
		converter:       converter,
		publisher:       publisher,
		cfg:             cfg,
		log:             log,
	}
}

// CreateCheckoutSession opens a hosted checkout for an approved campaign. The
// amount is the campaign's full committed budget converted into the display
// currency the caller asked for.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, campaignID, userID uuid.UUID, displayCurrency string) (*models.CheckoutSession, error) {
	campaign, err := s.campaignService.GetOwned(ctx, campaignID, userID)
	if err != nil {
		return nil, err
	}
	if campaign.Status != models.CampaignStatusApproved {
		return nil, &models.IllegalTransitionError{From: campaign.Status, To: models.CampaignStatusActive}
	}

	if displayCurrency == "" {
		displayCurrency = campaign.Currency
	}
	amount := campaign.TotalBudget
	if displayCurrency != campaign.Currency {
		amount, err = s.converter.Convert(amount, campaign.Currency, displayCurrency)
		if err != nil {
			return nil, err
		}
	}

	session := &models.CheckoutSession{
		CampaignID: campaignID,
		UserID:     userID,
		Amount:     amount,
		Currency:   displayCurrency,
		Status:     models.CheckoutStatusPending,
	}

	reference := uuid.New().String()
	providerRef, checkoutURL, err := s.client.CreateSession(ctx, reference, session.Amount, session.Currency)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	session.ProviderRef = providerRef
	session.CheckoutURL = checkoutURL

	if err := s.checkoutRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "checkout_session_created",
		EntityType:  "checkout_session",
		EntityID:    &session.ID,
		Meta:        map[string]any{"campaign_id": campaignID.String(), "amount": session.Amount, "currency": session.Currency},
	})

	return session, nil
}

// VerifyWebhookSignature checks the provider's HMAC over the raw body. An
// empty configured secret disables verification (warned at startup).
func (s *PaymentService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.cfg.CheckoutWebhookSecret == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(s.cfg.CheckoutWebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandlePaymentConfirmed marks the session paid and activates the campaign.
// Duplicate webhook deliveries are rejected by the session's status check, so
// a campaign is never activated twice.
func (s *PaymentService) HandlePaymentConfirmed(ctx context.Context, providerRef string) error {
	session, err := s.checkoutRepo.GetByProviderRef(ctx, providerRef)
	if err != nil {
		return fmt.Errorf("unknown checkout session %q: %w", providerRef, err)
	}
	if session.Status != models.CheckoutStatusPending {
		return fmt.Errorf("checkout session %s already %s", session.ID, session.Status)
	}

	if err := s.checkoutRepo.UpdateStatus(ctx, session.ID, models.CheckoutStatusPaid); err != nil {
		return err
	}

	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type: events.EventPaymentReceived,
		Payload: map[string]any{
			"campaign_id": session.CampaignID.String(),
			"session_id":  session.ID.String(),
			"amount":      session.Amount,
			"currency":    session.Currency,
		},
	})

	_, err = s.campaignService.Activate(ctx, session.CampaignID, &session.UserID)
	return err
}

// ExpireStaleSessions times out pending sessions past the TTL. Run by the
// worker.
func (s *PaymentService) ExpireStaleSessions(ctx context.Context) {
	sessions, err := s.checkoutRepo.ListStalePending(ctx, s.cfg.CheckoutSessionTTL)
	if err != nil {
		s.log.Error("failed to list stale checkout sessions", zap.Error(err))
		return
	}
	for _, session := range sessions {
		if err := s.checkoutRepo.UpdateStatus(ctx, session.ID, models.CheckoutStatusExpired); err != nil {
			s.log.Error("failed to expire checkout session", zap.String("session_id", session.ID.String()), zap.Error(err))
			continue
		}
		s.log.Info("expired stale checkout session",
			zap.String("session_id", session.ID.String()),
			zap.String("campaign_id", session.CampaignID.String()),
		)
	}
}
