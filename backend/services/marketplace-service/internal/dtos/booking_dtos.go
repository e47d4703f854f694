package dtos

import (
	"time"

	shared "github.com/road2tec/girha-setu-sub000/backend/shared/go-dtos"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

type CreateBookingRequest struct {
	UserID      string `json:"userId" validate:"required,uuid"`
	FlatID      string `json:"flatId" validate:"required,uuid"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate" validate:"required,datetime=2006-01-02"`
	TotalAmount int64  `json:"totalAmount" validate:"required,gt=0,lte=1000000000"`
}

type CreateBookingResponse struct {
	Message      string          `json:"message"`
	Booking      *models.Booking `json:"booking"`
	OrderID      string          `json:"orderId"`
	Amount       int64           `json:"amount"`
	ClientSecret string          `json:"clientSecret,omitempty"`
}

// BookingView is a booking with its flat and user populated.
type BookingView struct {
	ID            string               `json:"id"`
	Property      *shared.FlatSummary  `json:"property"`
	User          *shared.UserSummary  `json:"user"`
	StartDate     string               `json:"startDate"`
	EndDate       string               `json:"endDate"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	TotalAmount   int64                `json:"totalAmount"`
	OrderID       string               `json:"orderId,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

type ListBookingsResponse struct {
	Message  string         `json:"message"`
	Bookings []*BookingView `json:"bookings"`
}
