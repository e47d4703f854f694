package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/services"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const maxWebhookBodyBytes = 1 << 16

// StripeWebhookController settles bookings from PaymentIntent events.
type StripeWebhookController struct {
	bookingService *services.BookingService
	webhookSecret  string
}

func NewStripeWebhookController(bookingService *services.BookingService, webhookSecret string) *StripeWebhookController {
	return &StripeWebhookController{bookingService: bookingService, webhookSecret: webhookSecret}
}

// WebhookHandler -> POST /api/payments/stripe/webhook
// Domain outcomes (unknown order, already settled) are acknowledged with 200.
// Internal failures answer 500 so Stripe redelivers the event.
func (c *StripeWebhookController) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	sigHeader := r.Header.Get("Stripe-Signature")
	if sigHeader == "" {
		utils.Logger.Error("Missing Stripe-Signature header")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to read webhook body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
	if err != nil {
		utils.Logger.WithError(err).Error("Stripe webhook signature verification failed")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			utils.Logger.WithError(err).Error("Could not parse payment_intent.succeeded")
			break
		}
		if err := c.bookingService.HandlePaymentSucceeded(r.Context(), pi.ID); err != nil {
			utils.Logger.WithError(err).WithField("payment_intent", pi.ID).Error("Failed to complete booking")
			w.WriteHeader(webhookStatus(err))
			return
		}

	case "payment_intent.payment_failed", "payment_intent.canceled":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			utils.Logger.WithError(err).Errorf("Could not parse %s", event.Type)
			break
		}
		if err := c.bookingService.HandlePaymentFailed(r.Context(), pi.ID); err != nil {
			utils.Logger.WithError(err).WithField("payment_intent", pi.ID).Error("Failed to fail booking")
			w.WriteHeader(webhookStatus(err))
			return
		}

	default:
		utils.Logger.Debugf("Unhandled Stripe event type: %s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}

// webhookStatus is 200 for client-class AppErrors and 500 otherwise.
func webhookStatus(err error) int {
	var appErr *utils.AppError
	if errors.As(err, &appErr) && appErr.StatusCode < http.StatusInternalServerError {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
