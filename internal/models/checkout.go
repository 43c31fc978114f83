package models

import (
	"time"

	"github.com/google/uuid"
)

// Checkout session statuses
const (
	CheckoutStatusPending = "pending"
	CheckoutStatusPaid    = "paid"
	CheckoutStatusExpired = "expired"
)

// CheckoutSession tracks one hosted-checkout attempt for a campaign. The
// campaign is activated only when the provider webhook marks the session paid.
type CheckoutSession struct {
	ID          uuid.UUID `json:"id"`
	CampaignID  uuid.UUID `json:"campaign_id"`
	UserID      uuid.UUID `json:"user_id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	ProviderRef string    `json:"provider_ref"`
	CheckoutURL string    `json:"checkout_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
