package testhelpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

// SignStripePayload constructs the "Stripe-Signature" header value.
func (h *TestHelper) SignStripePayload(payload []byte) string {
	require.NotEmpty(h.T, h.StripeWebhookSecret, "StripeWebhookSecret is not configured in TestHelper")
	timestamp := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(h.StripeWebhookSecret))
	_, _ = mac.Write([]byte(fmt.Sprintf("%d.", timestamp)))
	_, _ = mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

// MockStripeWebhookPayload creates a JSON byte slice for a Stripe webhook event.
func (h *TestHelper) MockStripeWebhookPayload(eventType string, data map[string]any) []byte {
	h.T.Helper()
	payload := map[string]any{
		"id":          "evt_test_" + utils.RandomString(10),
		"object":      "event",
		"api_version": stripe.APIVersion,
		"created":     time.Now().Unix(),
		"type":        eventType,
		"data": map[string]any{
			"object": data,
		},
	}
	jsonBytes, err := json.Marshal(payload)
	require.NoError(h.T, err, "Failed to marshal mock Stripe webhook payload")
	return jsonBytes
}

// BuildStripeWebhookRequest signs payload and wraps it in a POST to reqURL.
func (h *TestHelper) BuildStripeWebhookRequest(reqURL string, payload []byte) *http.Request {
	req := h.BuildAuthRequest(http.MethodPost, reqURL, "", payload)
	req.Header.Set("Stripe-Signature", h.SignStripePayload(payload))
	return req
}

