package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationNewListing    NotificationType = "New Listing"
	NotificationPriceDrop     NotificationType = "Price Drop"
	NotificationBookingUpdate NotificationType = "Booking Update"
	NotificationAdminMessage  NotificationType = "Admin Message"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationNewListing, NotificationPriceDrop, NotificationBookingUpdate, NotificationAdminMessage:
		return true
	default:
		return false
	}
}

// Notification is created once and referenced from each recipient's inbox
// (user_notifications).
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	FlatID    *uuid.UUID       `json:"property,omitempty"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
}
