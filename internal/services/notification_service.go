package services

import (
	"context"

	"github.com/geoads/backend/internal/events"
	"github.com/geoads/backend/internal/models"
	"github.com/geoads/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService persists notifications and fans them out over the event
// bus so connected websocket clients see them without polling.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepo
	publisher        events.Publisher
	log              *zap.Logger
}

func NewNotificationService(
	notificationRepo *repositories.NotificationRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		log:              log,
	}
}

func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, kind, message string, campaignID *uuid.UUID) {
	n := &models.Notification{
		UserID:     userID,
		Kind:       kind,
		Message:    message,
		CampaignID: campaignID,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.log.Error("failed to store notification", zap.String("kind", kind), zap.Error(err))
		return
	}

	payload := map[string]any{
		"id":      n.ID.String(),
		"user_id": userID.String(),
		"kind":    kind,
		"message": message,
	}
	if campaignID != nil {
		payload["campaign_id"] = campaignID.String()
	}
	_ = s.publisher.Publish(ctx, events.StreamNotifications, events.Event{
		Type:    events.EventNotificationCreated,
		Payload: payload,
	})
}

// NotifyMany sends the same notification to a set of users (e.g. all admins).
func (s *NotificationService) NotifyMany(ctx context.Context, userIDs []uuid.UUID, kind, message string, campaignID *uuid.UUID) {
	for _, id := range userIDs {
		s.Notify(ctx, id, kind, message, campaignID)
	}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error) {
	return s.notificationRepo.ListForUser(ctx, userID, unreadOnly, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
