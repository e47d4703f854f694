package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/routes"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/services"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-testhelpers"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
)

// unreachableBookings fails every order lookup, like a database outage.
type unreachableBookings struct {
	repositories.BookingRepository
}

func (unreachableBookings) GetByOrderID(context.Context, string) (*models.Booking, error) {
	return nil, errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
}

func TestWebhookStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, webhookStatus(utils.NewNotFound("No booking for payment order", nil)))
	assert.Equal(t, http.StatusOK, webhookStatus(utils.NewConflict(utils.ErrCodeConflict, "Booking payment already settled", nil, nil)))
	assert.Equal(t, http.StatusInternalServerError, webhookStatus(utils.NewInternal("Failed to load booking", nil)))
	assert.Equal(t, http.StatusInternalServerError, webhookStatus(errors.New("boom")))
}

func TestWebhookHandler_RedeliveryOnInternalFailure(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	bookings := services.NewBookingService(unreachableBookings{}, nil, nil, nil, nil, nil, nil, nil)
	c := NewStripeWebhookController(bookings, h.StripeWebhookSecret)

	for _, eventType := range []string{"payment_intent.succeeded", "payment_intent.payment_failed"} {
		t.Run(eventType, func(t *testing.T) {
			payload := h.MockStripeWebhookPayload(eventType, map[string]any{"id": "pi_down", "object": "payment_intent"})
			rr := h.Do(http.HandlerFunc(c.WebhookHandler), h.BuildStripeWebhookRequest(routes.StripeWebhook, payload))
			assert.Equal(t, http.StatusInternalServerError, rr.Code)
		})
	}
}

func TestWebhookHandler_UnknownOrderAcknowledged(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	bookings := services.NewBookingService(h.Bookings, h.Flats, h.Users, nil, nil, nil, nil, nil)
	c := NewStripeWebhookController(bookings, h.StripeWebhookSecret)

	payload := h.MockStripeWebhookPayload("payment_intent.succeeded", map[string]any{"id": "pi_unknown", "object": "payment_intent"})
	rr := h.Do(http.HandlerFunc(c.WebhookHandler), h.BuildStripeWebhookRequest(routes.StripeWebhook, payload))
	assert.Equal(t, http.StatusOK, rr.Code)
}
