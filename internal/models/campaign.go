package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Campaign statuses
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusSubmitted = "submitted"
	CampaignStatusInReview  = "in_review"
	CampaignStatusApproved  = "approved"
	CampaignStatusRejected  = "rejected"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

// Valid state transitions: from -> []to
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusDraft:     {CampaignStatusSubmitted},
	CampaignStatusSubmitted: {CampaignStatusInReview},
	CampaignStatusInReview:  {CampaignStatusApproved, CampaignStatusRejected, CampaignStatusDraft},
	CampaignStatusApproved:  {CampaignStatusActive},
	CampaignStatusRejected:  {CampaignStatusDraft},
	CampaignStatusActive:    {CampaignStatusPaused, CampaignStatusCompleted},
	CampaignStatusPaused:    {CampaignStatusActive, CampaignStatusCompleted},
	CampaignStatusCompleted: {},
}

func IsValidTransition(from, to string) bool {
	allowed, ok := ValidCampaignTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IllegalTransitionError names the attempted from/to pair. Services return it
// instead of silently no-opping on a bad transition.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal campaign transition from %s to %s", e.From, e.To)
}

// ValidationError reports operator input that must be fixed before a
// transition is attempted (e.g. a blank rejection reason).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// Admin review actions
const (
	AdminActionApprove        = "approve"
	AdminActionReject         = "reject"
	AdminActionRequestChanges = "request_changes"
)

// DecisionTarget maps an admin review action to the status it moves the
// campaign into. Reject and request_changes require a non-empty message;
// approve's message is optional. The message rule is enforced here so it is
// checked before anything touches the database.
func DecisionTarget(action, message string) (string, error) {
	switch action {
	case AdminActionApprove:
		return CampaignStatusApproved, nil
	case AdminActionReject:
		if strings.TrimSpace(message) == "" {
			return "", &ValidationError{Field: "message", Reason: "a reason is required to reject"}
		}
		return CampaignStatusRejected, nil
	case AdminActionRequestChanges:
		if strings.TrimSpace(message) == "" {
			return "", &ValidationError{Field: "message", Reason: "a reason is required to request changes"}
		}
		// Requested changes send the campaign back to draft so the owner can edit.
		return CampaignStatusDraft, nil
	default:
		return "", &ValidationError{Field: "action", Reason: fmt.Sprintf("unknown action %q", action)}
	}
}

// Coverage types as sent on the wire
const (
	CoverageRadius   = "30-mile"
	CoverageState    = "state"
	CoverageNational = "country"
)

func IsValidCoverageType(t string) bool {
	return t == CoverageRadius || t == CoverageState || t == CoverageNational
}

type Campaign struct {
	ID               uuid.UUID  `json:"id"`
	AdvertiserUserID uuid.UUID  `json:"advertiser_user_id"`
	Name             string     `json:"name"`
	CountryCode      string     `json:"country_code"`
	IndustryID       uuid.UUID  `json:"industry_id"`
	AdFormatID       uuid.UUID  `json:"ad_format_id"`
	CoverageType     string     `json:"coverage_type"` // 30-mile / state / country
	RegionID         *uuid.UUID `json:"region_id,omitempty"`
	CenterLat        *float64   `json:"center_lat,omitempty"`
	CenterLng        *float64   `json:"center_lng,omitempty"`
	RadiusMiles      *int       `json:"radius_miles,omitempty"`
	DurationMonths   int        `json:"duration_months"`
	MonthlyPrice     float64    `json:"monthly_price"`
	TotalBudget      float64    `json:"total_budget"`
	Currency         string     `json:"currency"`
	Headline         string     `json:"headline"`
	Description      *string    `json:"description,omitempty"`
	ImageURL         *string    `json:"image_url,omitempty"`
	CallToAction     *string    `json:"call_to_action,omitempty"`
	LandingURL       string     `json:"landing_url"`
	Status           string     `json:"status"`
	ReviewMessage    *string    `json:"review_message,omitempty"`
	StartsAt         *time.Time `json:"starts_at,omitempty"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Editable reports whether the owner may still mutate the campaign.
// Everything from submission until rejection is read-only for the owner.
func (c *Campaign) Editable() bool {
	return c.Status == CampaignStatusDraft || c.Status == CampaignStatusRejected
}

// StatusHistory is one audit row of the campaign's lifecycle, including the
// operator message attached to reject / request-changes decisions.
type StatusHistory struct {
	ID         uuid.UUID  `json:"id"`
	CampaignID uuid.UUID  `json:"campaign_id"`
	FromStatus string     `json:"from_status"`
	ToStatus   string     `json:"to_status"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	ActorType  string     `json:"actor_type"` // owner/admin/system
	Message    *string    `json:"message,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// DailyStat is one day of delivery counters for an active campaign.
type DailyStat struct {
	CampaignID  uuid.UUID `json:"campaign_id"`
	Day         time.Time `json:"day"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Spend       float64   `json:"spend"`
}
