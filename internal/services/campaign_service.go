package services

import (
	"context"
	"fmt"
	"time"

	"github.com/geoads/backend/internal/config"
	"github.com/geoads/backend/internal/events"
	"github.com/geoads/backend/internal/landing"
	"github.com/geoads/backend/internal/models"
	"github.com/geoads/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CampaignService struct {
	campaignRepo    *repositories.CampaignRepo
	userRepo        *repositories.UserRepo
	auditRepo       *repositories.AuditRepo
	statsRepo       *repositories.StatsRepo
	pricingService  *PricingService
	notifications   *NotificationService
	publisher       events.Publisher
	cfg             *config.Config
	log             *zap.Logger
}

func NewCampaignService(
	campaignRepo *repositories.CampaignRepo,
	userRepo *repositories.UserRepo,
	auditRepo *repositories.AuditRepo,
	statsRepo *repositories.StatsRepo,
	pricingService *PricingService,
	notifications *NotificationService,
	publisher events.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo:   campaignRepo,
		userRepo:       userRepo,
		auditRepo:      auditRepo,
		statsRepo:      statsRepo,
		pricingService: pricingService,
		notifications:  notifications,
		publisher:      publisher,
		cfg:            cfg,
		log:            log,
	}
}

// transition validates and performs a status change with history, audit
// logging and an event for websocket subscribers. Illegal transitions fail
// with IllegalTransitionError before anything is written.
func (s *CampaignService) transition(ctx context.Context, campaign *models.Campaign, newStatus string, actorID *uuid.UUID, actorType string, message *string) error {
	if !models.IsValidTransition(campaign.Status, newStatus) {
		return &models.IllegalTransitionError{From: campaign.Status, To: newStatus}
	}

	oldStatus := campaign.Status
	if err := s.campaignRepo.UpdateStatus(ctx, campaign.ID, oldStatus, newStatus, message); err != nil {
		return err
	}
	campaign.Status = newStatus
	campaign.ReviewMessage = message

	_ = s.campaignRepo.AddStatusHistory(ctx, &models.StatusHistory{
		CampaignID: campaign.ID,
		FromStatus: oldStatus,
		ToStatus:   newStatus,
		ActorID:    actorID,
		ActorType:  actorType,
		Message:    message,
	})

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: actorID,
		ActorType:   actorType,
		Action:      fmt.Sprintf("campaign_status_%s_to_%s", oldStatus, newStatus),
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
		Meta:        map[string]any{"old_status": oldStatus, "new_status": newStatus},
	})

	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type: events.EventCampaignStatusChanged,
		Payload: map[string]any{
			"campaign_id": campaign.ID.String(),
			"owner_id":    campaign.AdvertiserUserID.String(),
			"old_status":  oldStatus,
			"new_status":  newStatus,
		},
	})

	return nil
}

// CreateInput carries the owner-editable campaign fields. The price is never
// taken from the client; it is recomputed server-side on every create/update.
type CreateInput struct {
	Name            string
	CountryCode     string
	IndustryID      uuid.UUID
	AdFormatID      uuid.UUID
	CoverageType    string
	RegionID        *uuid.UUID
	CenterLat       *float64
	CenterLng       *float64
	RadiusMiles     *int
	DurationMonths  int
	DisplayCurrency string
	Headline        string
	Description     *string
	ImageURL        *string
	CallToAction    *string
	LandingURL      string
}

func (s *CampaignService) validateInput(in CreateInput) error {
	if in.Name == "" || in.Headline == "" {
		return &models.ValidationError{Field: "name", Reason: "name and headline are required"}
	}
	if !models.IsValidCoverageType(in.CoverageType) {
		return &models.ValidationError{Field: "coverage_type", Reason: fmt.Sprintf("unknown coverage type %q", in.CoverageType)}
	}
	if in.CoverageType == models.CoverageState && in.RegionID == nil {
		return &models.ValidationError{Field: "region_id", Reason: "state coverage requires a region"}
	}
	if in.CoverageType == models.CoverageRadius {
		if in.CenterLat == nil || in.CenterLng == nil {
			return &models.ValidationError{Field: "center", Reason: "radius coverage requires a center point"}
		}
		if in.RadiusMiles != nil && (*in.RadiusMiles < 5 || *in.RadiusMiles > 100) {
			return &models.ValidationError{Field: "radius_miles", Reason: "radius must be between 5 and 100 miles"}
		}
	}
	if err := landing.ValidateURL(in.LandingURL); err != nil {
		return &models.ValidationError{Field: "landing_url", Reason: err.Error()}
	}
	return nil
}

// priceFor recomputes the campaign's quote from current reference data.
func (s *CampaignService) priceFor(ctx context.Context, in CreateInput) (monthly, total float64, currencyCode string, err error) {
	quote, err := s.pricingService.Quote(ctx, QuoteRequest{
		IndustryID:      in.IndustryID,
		AdFormatID:      in.AdFormatID,
		CoverageType:    in.CoverageType,
		RegionID:        in.RegionID,
		CountryCode:     in.CountryCode,
		DurationMonths:  in.DurationMonths,
		DisplayCurrency: in.DisplayCurrency,
	})
	if err != nil {
		return 0, 0, "", err
	}
	return quote.FinalMonthlyPrice, quote.TotalPrice, quote.Currency, nil
}

func (s *CampaignService) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*models.Campaign, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	monthly, total, currencyCode, err := s.priceFor(ctx, in)
	if err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		AdvertiserUserID: ownerID,
		Name:             in.Name,
		CountryCode:      in.CountryCode,
		IndustryID:       in.IndustryID,
		AdFormatID:       in.AdFormatID,
		CoverageType:     in.CoverageType,
		RegionID:         in.RegionID,
		CenterLat:        in.CenterLat,
		CenterLng:        in.CenterLng,
		RadiusMiles:      in.RadiusMiles,
		DurationMonths:   in.DurationMonths,
		MonthlyPrice:     monthly,
		TotalBudget:      total,
		Currency:         currencyCode,
		Headline:         in.Headline,
		Description:      in.Description,
		ImageURL:         in.ImageURL,
		CallToAction:     in.CallToAction,
		LandingURL:       in.LandingURL,
		Status:           models.CampaignStatusDraft,
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &ownerID,
		ActorType:   "user",
		Action:      "campaign_created",
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
		Meta:        map[string]any{"coverage_type": in.CoverageType, "monthly_price": monthly},
	})

	return campaign, nil
}

// GetOwned returns a campaign only if it belongs to the user.
func (s *CampaignService) GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.AdvertiserUserID != userID {
		return nil, fmt.Errorf("campaign not found")
	}
	return c, nil
}

func (s *CampaignService) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, id)
}

func (s *CampaignService) List(ctx context.Context, userID uuid.UUID, f repositories.CampaignFilter) ([]models.Campaign, error) {
	f.AdvertiserUserID = &userID
	return s.campaignRepo.List(ctx, f)
}

// Update rewrites the editable fields and reprices. Campaigns are read-only
// to their owner outside draft/rejected.
func (s *CampaignService) Update(ctx context.Context, id, userID uuid.UUID, in CreateInput) (*models.Campaign, error) {
	existing, err := s.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !existing.Editable() {
		return nil, &models.ValidationError{Field: "status", Reason: fmt.Sprintf("campaign is read-only in status %s", existing.Status)}
	}
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	monthly, total, currencyCode, err := s.priceFor(ctx, in)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.CountryCode = in.CountryCode
	existing.IndustryID = in.IndustryID
	existing.AdFormatID = in.AdFormatID
	existing.CoverageType = in.CoverageType
	existing.RegionID = in.RegionID
	existing.CenterLat = in.CenterLat
	existing.CenterLng = in.CenterLng
	existing.RadiusMiles = in.RadiusMiles
	existing.DurationMonths = in.DurationMonths
	existing.MonthlyPrice = monthly
	existing.TotalBudget = total
	existing.Currency = currencyCode
	existing.Headline = in.Headline
	existing.Description = in.Description
	existing.ImageURL = in.ImageURL
	existing.CallToAction = in.CallToAction
	existing.LandingURL = in.LandingURL

	if err := s.campaignRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CampaignService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	existing, err := s.GetOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if !existing.Editable() {
		return &models.ValidationError{Field: "status", Reason: fmt.Sprintf("campaign cannot be deleted in status %s", existing.Status)}
	}
	return s.campaignRepo.Delete(ctx, id)
}

// SubmitForReview moves an owner's draft into the review pipeline and tells
// the admins.
func (s *CampaignService) SubmitForReview(ctx context.Context, campaignID, actorID uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.GetOwned(ctx, campaignID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, campaign, models.CampaignStatusSubmitted, &actorID, "owner", nil); err != nil {
		return nil, err
	}

	admins, err := s.userRepo.ListAdmins(ctx)
	if err != nil {
		s.log.Warn("failed to list admins for submission notice", zap.Error(err))
		return campaign, nil
	}
	ids := make([]uuid.UUID, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	s.notifications.NotifyMany(ctx, ids, models.NotificationSubmissionReceived,
		fmt.Sprintf("Campaign %q was submitted for review", campaign.Name), &campaign.ID)

	return campaign, nil
}

// ClaimForReview moves a submitted campaign into in_review. Called by an admin
// opening the submission, or by the worker's intake sweep.
func (s *CampaignService) ClaimForReview(ctx context.Context, campaignID uuid.UUID, actorID *uuid.UUID, actorType string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, campaign, models.CampaignStatusInReview, actorID, actorType, nil); err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, campaign.AdvertiserUserID, models.NotificationReviewStarted,
		fmt.Sprintf("Campaign %q is now being reviewed", campaign.Name), &campaign.ID)

	return campaign, nil
}

// ApplyAdminDecision resolves an in-review campaign. The reason-message rule
// is enforced by models.DecisionTarget before any transition is attempted.
func (s *CampaignService) ApplyAdminDecision(ctx context.Context, campaignID, adminID uuid.UUID, action, message string) (*models.Campaign, error) {
	target, err := models.DecisionTarget(action, message)
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	var msg *string
	if message != "" {
		msg = &message
	}
	if err := s.transition(ctx, campaign, target, &adminID, "admin", msg); err != nil {
		return nil, err
	}

	switch action {
	case models.AdminActionApprove:
		s.notifications.Notify(ctx, campaign.AdvertiserUserID, models.NotificationCampaignApproved,
			fmt.Sprintf("Campaign %q was approved. Complete payment to start delivery.", campaign.Name), &campaign.ID)
	case models.AdminActionReject:
		s.notifications.Notify(ctx, campaign.AdvertiserUserID, models.NotificationCampaignRejected,
			fmt.Sprintf("Campaign %q was rejected: %s", campaign.Name, message), &campaign.ID)
	case models.AdminActionRequestChanges:
		s.notifications.Notify(ctx, campaign.AdvertiserUserID, models.NotificationChangesRequested,
			fmt.Sprintf("Changes requested on campaign %q: %s", campaign.Name, message), &campaign.ID)
	}

	return campaign, nil
}

// Activate turns an approved campaign live. Only the payment path calls this,
// after the checkout session is confirmed paid.
func (s *CampaignService) Activate(ctx context.Context, campaignID uuid.UUID, actorID *uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, campaign, models.CampaignStatusActive, actorID, "system", nil); err != nil {
		return nil, err
	}

	startsAt := time.Now()
	endsAt := startsAt.AddDate(0, campaign.DurationMonths, 0)
	if err := s.campaignRepo.MarkActive(ctx, campaign.ID, startsAt, endsAt); err != nil {
		s.log.Error("failed to set delivery window", zap.String("campaign_id", campaign.ID.String()), zap.Error(err))
	}
	campaign.StartsAt = &startsAt
	campaign.EndsAt = &endsAt

	s.notifications.Notify(ctx, campaign.AdvertiserUserID, models.NotificationPaymentConfirmed,
		fmt.Sprintf("Payment received. Campaign %q is now live.", campaign.Name), &campaign.ID)

	return campaign, nil
}

func (s *CampaignService) Pause(ctx context.Context, campaignID, actorID uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.GetOwned(ctx, campaignID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, campaign, models.CampaignStatusPaused, &actorID, "owner", nil); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) Resume(ctx context.Context, campaignID, actorID uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.GetOwned(ctx, campaignID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, campaign, models.CampaignStatusActive, &actorID, "owner", nil); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Complete finalizes delivery. actorID is nil when the worker sweep finishes
// a campaign whose window has closed.
func (s *CampaignService) Complete(ctx context.Context, campaignID uuid.UUID, actorID *uuid.UUID, actorType string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if actorID != nil && campaign.AdvertiserUserID != *actorID {
		return nil, fmt.Errorf("campaign not found")
	}
	if err := s.transition(ctx, campaign, models.CampaignStatusCompleted, actorID, actorType, nil); err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, campaign.AdvertiserUserID, models.NotificationCampaignCompleted,
		fmt.Sprintf("Campaign %q finished its run", campaign.Name), &campaign.ID)

	return campaign, nil
}

// ReviewQueue lists campaigns waiting on an admin.
func (s *CampaignService) ReviewQueue(ctx context.Context, limit, offset int) ([]models.Campaign, error) {
	submitted := models.CampaignStatusSubmitted
	inReview := models.CampaignStatusInReview

	queue, err := s.campaignRepo.List(ctx, repositories.CampaignFilter{Status: &submitted, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	reviewing, err := s.campaignRepo.List(ctx, repositories.CampaignFilter{Status: &inReview, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return append(queue, reviewing...), nil
}

func (s *CampaignService) History(ctx context.Context, campaignID uuid.UUID) ([]models.StatusHistory, error) {
	return s.campaignRepo.GetStatusHistory(ctx, campaignID)
}

// StatsSummary is the analytics payload for one campaign.
type StatsSummary struct {
	Daily            []models.DailyStat `json:"daily"`
	TotalImpressions int64              `json:"total_impressions"`
	TotalClicks      int64              `json:"total_clicks"`
	TotalSpend       float64            `json:"total_spend"`
}

func (s *CampaignService) Stats(ctx context.Context, campaignID, userID uuid.UUID, since time.Time) (*StatsSummary, error) {
	if _, err := s.GetOwned(ctx, campaignID, userID); err != nil {
		return nil, err
	}

	daily, err := s.statsRepo.ListForCampaign(ctx, campaignID, since)
	if err != nil {
		return nil, err
	}
	impressions, clicks, spend, err := s.statsRepo.Totals(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return &StatsSummary{
		Daily:            daily,
		TotalImpressions: impressions,
		TotalClicks:      clicks,
		TotalSpend:       spend,
	}, nil
}
