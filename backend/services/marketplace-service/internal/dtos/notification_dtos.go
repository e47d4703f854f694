package dtos

import (
	"time"

	shared "github.com/road2tec/girha-setu-sub000/backend/shared/go-dtos"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

// NotificationView resolves the flat reference at read time; Property is
// null when the flat no longer exists.
type NotificationView struct {
	ID        string                  `json:"id"`
	Message   string                  `json:"message"`
	Type      models.NotificationType `json:"type"`
	Property  *shared.FlatSummary     `json:"property"`
	CreatedAt time.Time               `json:"createdAt"`
}

type ListNotificationsResponse struct {
	Notifications []*NotificationView `json:"notifications"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
