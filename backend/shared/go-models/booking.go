package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// CanTransitionTo encodes pending -> completed | failed. Terminal states
// accept no further transitions.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusCompleted || next == PaymentStatusFailed
	case PaymentStatusCompleted, PaymentStatusFailed:
		return false
	default:
		return false
	}
}

// BlocksDates reports whether a booking in this state occupies its range.
func (s PaymentStatus) BlocksDates() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted:
		return true
	case PaymentStatusFailed:
		return false
	default:
		return false
	}
}

type Booking struct {
	Versioned

	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user"`
	FlatID         uuid.UUID     `json:"property"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	TotalAmount    int64         `json:"total_amount"`
	PaymentOrderID string        `json:"payment_order_id,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (b *Booking) GetID() string {
	return b.ID.String()
}

// Overlaps reports whether the closed range [StartDate, EndDate] meets
// [start, end]. A stay ending on the day another begins still collides.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}

// Blocks reports whether b keeps [start, end] from being booked.
func (b *Booking) Blocks(start, end time.Time) bool {
	return b.PaymentStatus.BlocksDates() && b.Overlaps(start, end)
}
