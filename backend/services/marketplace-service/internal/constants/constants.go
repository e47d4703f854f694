package constants

import (
	"time"
)

// Payments
const (
	Currency = "inr"
	// MinorUnitsPerRupee converts totalAmount to the gateway's paise.
	MinorUnitsPerRupee = 100
	// MaxTotalAmount caps totalAmount (rupees) so the paise amount stays
	// well inside int64. Keep in step with the lte tag on CreateBookingRequest.
	MaxTotalAmount = 1_000_000_000
	// PendingBookingTTL is how long a booking may wait for payment before the
	// expiry job releases its dates.
	PendingBookingTTL = 30 * time.Minute
)

// Cron specs
const (
	ExpirePendingBookingsSpec       = "@every 5m"
	ExpirePendingBookingsJobTimeout = 2 * time.Minute
)

// Listing cache
const (
	ListingCacheTTL    = 2 * time.Minute
	ListingCachePrefix = "flats:list"
	DefaultListLimit   = 50
	MaxListLimit       = 200
)

// Images
const (
	MaxImageUploadBytes = 10 << 20
)

// Assistant
const (
	AssistantMaxHistory   = 20
	AssistantSystemPrompt = "You are the Girha Setu rental assistant. Help users find flats, " +
		"understand bookings and payments in INR, and use the wishlist and chat features. " +
		"Keep answers short and never invent listings."
)

// Email subjects
const (
	EmailSubjectNewBooking     = "New booking for your flat"
	EmailSubjectPaymentReceipt = "Your Girha Setu booking is confirmed"
)

// Domain event routing keys
const (
	EventsExchange            = "girha-setu.events"
	EventBookingCreated       = "booking.created"
	EventBookingPaymentUpdate = "booking.payment_updated"
	EventFlatCreated          = "flat.created"
	EventFlatDeleted          = "flat.deleted"
)
