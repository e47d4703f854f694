package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/utils"
	shared "github.com/road2tec/girha-setu-sub000/backend/shared/go-dtos"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

// NotificationService owns inbox reads and every fan-out pattern. Creation
// and fan-out are a single repository call, so a notification is never
// visible to only part of its audience.
type NotificationService struct {
	notifications repositories.NotificationRepository
}

func NewNotificationService(notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func newNotification(t models.NotificationType, flatID *uuid.UUID, msg string) *models.Notification {
	return &models.Notification{
		ID:      uuid.New(),
		FlatID:  flatID,
		Message: msg,
		Type:    t,
	}
}

// List returns the user's inbox newest first with flats resolved at read time.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) (*dtos.ListNotificationsResponse, error) {
	entries, err := s.notifications.ListForUser(ctx, userID)
	if err != nil {
		return nil, utils.NewInternal("Failed to load notifications", err)
	}
	out := make([]*dtos.NotificationView, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dtos.NotificationView{
			ID:        e.Notification.ID.String(),
			Message:   e.Notification.Message,
			Type:      e.Notification.Type,
			Property:  shared.NewFlatSummary(e.Flat),
			CreatedAt: e.Notification.CreatedAt,
		})
	}
	return &dtos.ListNotificationsResponse{Notifications: out}, nil
}

// Delete removes the notification from the user's inbox. The row itself goes
// away once no inbox references it.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	removed, err := s.notifications.RemoveFromInbox(ctx, userID, notificationID)
	if err != nil {
		return utils.NewInternal("Failed to delete notification", err)
	}
	if !removed {
		return utils.NewNotFound("Notification not found", internal_utils.ErrNotFound)
	}
	return nil
}

// NotifyUser sends a single-recipient notification.
func (s *NotificationService) NotifyUser(
	ctx context.Context,
	userID uuid.UUID,
	t models.NotificationType,
	flatID *uuid.UUID,
	msg string,
) error {
	return s.notifications.CreateForUsers(ctx, newNotification(t, flatID, msg), []uuid.UUID{userID})
}

// NotifyNewListing broadcasts a New Listing notification to every buyer.
func (s *NotificationService) NotifyNewListing(ctx context.Context, flat *models.Flat) (int64, error) {
	role := models.RoleBuyer
	id := flat.ID
	msg := fmt.Sprintf("New listing: %s", flat.Title)
	if flat.Location != nil && flat.Location.City != "" {
		msg = fmt.Sprintf("New listing in %s: %s", flat.Location.City, flat.Title)
	}
	return s.notifications.BroadcastToRole(ctx, newNotification(models.NotificationNewListing, &id, msg), &role)
}

// NotifyPriceDrop tells everyone who favourited the flat about the new price.
func (s *NotificationService) NotifyPriceDrop(ctx context.Context, flat *models.Flat, oldPrice int64) (int64, error) {
	id := flat.ID
	msg := fmt.Sprintf("Price drop on %s: ₹%d → ₹%d", flat.Title, oldPrice, flat.Price)
	return s.notifications.BroadcastToFavoriters(ctx, newNotification(models.NotificationPriceDrop, &id, msg), flat.ID)
}

// BroadcastAdminMessage delivers an Admin Message to every user.
func (s *NotificationService) BroadcastAdminMessage(ctx context.Context, msg string) (*models.Notification, int64, error) {
	n := newNotification(models.NotificationAdminMessage, nil, msg)
	delivered, err := s.notifications.BroadcastToRole(ctx, n, nil)
	if err != nil {
		return nil, 0, err
	}
	return n, delivered, nil
}
