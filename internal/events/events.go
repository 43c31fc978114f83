package events

import "context"

// Event types
const (
	EventCampaignStatusChanged = "campaign_status_changed"
	EventNotificationCreated   = "notification_created"
	EventPaymentReceived       = "payment_received"
	EventPricingConfigChanged  = "pricing_config_changed"
)

// Streams
const (
	StreamCampaigns     = "events:campaigns"
	StreamNotifications = "events:notifications"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
