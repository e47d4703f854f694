package dtos

import (
	shared "github.com/road2tec/girha-setu-sub000/backend/shared/go-dtos"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

type BroadcastRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

type BroadcastResponse struct {
	Message   string `json:"message"`
	Delivered int64  `json:"delivered"`
}

type PendingOwnersResponse struct {
	Owners []*shared.UserSummary `json:"owners"`
}

type StatsResponse struct {
	UsersByRole       map[models.Role]int64          `json:"usersByRole"`
	Flats             int64                          `json:"flats"`
	BookingsByPayment map[models.PaymentStatus]int64 `json:"bookingsByPaymentStatus"`
}

type AuditLogsResponse struct {
	Logs []*models.AdminAuditLog `json:"logs"`
}
