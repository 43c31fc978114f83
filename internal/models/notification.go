package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds
const (
	NotificationSubmissionReceived = "submission_received"
	NotificationReviewStarted      = "review_started"
	NotificationCampaignApproved   = "campaign_approved"
	NotificationCampaignRejected   = "campaign_rejected"
	NotificationChangesRequested   = "changes_requested"
	NotificationPaymentConfirmed   = "payment_confirmed"
	NotificationCampaignCompleted  = "campaign_completed"
)

type Notification struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Kind       string     `json:"kind"`
	Message    string     `json:"message"`
	CampaignID *uuid.UUID `json:"campaign_id,omitempty"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
