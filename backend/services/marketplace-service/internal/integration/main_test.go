package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/controllers"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/services"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPayments struct {
	mu        sync.Mutex
	seq       int
	cancelled []string
	paid      map[string]bool
}

func (s *stubPayments) CreateOrder(_ context.Context, amountMinor int64, currency string, _ map[string]string) (*services.PaymentOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("pi_it_%d", s.seq)
	return &services.PaymentOrder{ID: id, ClientSecret: id + "_secret", Amount: amountMinor, Currency: currency}, nil
}

func (s *stubPayments) CancelOrder(_ context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paid[orderID] {
		return fmt.Errorf("payment intent %s has already succeeded", orderID)
	}
	s.cancelled = append(s.cancelled, orderID)
	return nil
}

func (s *stubPayments) GetOrderStatus(_ context.Context, orderID string) (services.OrderStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paid[orderID] {
		return services.OrderStatusSucceeded, nil
	}
	for _, id := range s.cancelled {
		if id == orderID {
			return services.OrderStatusCanceled, nil
		}
	}
	return services.OrderStatusOpen, nil
}

// markPaid settles orderID at the gateway without delivering a webhook.
func (s *stubPayments) markPaid(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paid == nil {
		s.paid = map[string]bool{}
	}
	s.paid[orderID] = true
}

type discardMailer struct{}

func (discardMailer) SendEmail(context.Context, string, string, string, string, string) error { return nil }

type discardSMS struct{}

func (discardSMS) SendSMS(context.Context, string, string) error { return nil }

type staticGeocoder struct{}

func (staticGeocoder) Geocode(context.Context, string) (float64, float64, error) {
	return 18.5204, 73.8567, nil
}

// env is the service wired over the in-memory store, the same way
// cmd/main.go wires it over Postgres.
type env struct {
	*testhelpers.TestHelper
	router   http.Handler
	payments *stubPayments
	bookings *services.BookingService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	h := testhelpers.NewTestHelper(t)
	payments := &stubPayments{}
	events := services.NoopPublisher{}

	notifications := services.NewNotificationService(h.Notifications)
	bookings := services.NewBookingService(h.Bookings, h.Flats, h.Users, notifications, payments, discardMailer{}, discardSMS{}, events)
	wishlist := services.NewWishlistService(h.Favorites, h.Users, h.Flats)
	chats := services.NewChatService(h.Chats, h.Users)
	flats := services.NewFlatService(h.Flats, h.Ratings, h.Users, notifications, staticGeocoder{}, nil, nil, events)
	admin := services.NewAdminService(h.Users, h.Flats, h.Bookings, h.AuditLogs, flats, notifications)

	router := controllers.NewRouter(h.JWTSecret, controllers.Handlers{
		Health:        controllers.NewHealthController(nil),
		Booking:       controllers.NewBookingController(bookings),
		StripeWebhook: controllers.NewStripeWebhookController(bookings, h.StripeWebhookSecret),
		Notification:  controllers.NewNotificationController(notifications),
		Wishlist:      controllers.NewWishlistController(wishlist),
		Chat:          controllers.NewChatController(chats),
		Flat:          controllers.NewFlatController(flats),
		Admin:         controllers.NewAdminController(admin),
		Assistant:     controllers.NewAssistantController(services.NewAssistantService("")),
	})
	return &env{TestHelper: h, router: router, payments: payments, bookings: bookings}
}

func (e *env) call(method, url string, as *models.User, body any) *httptest.ResponseRecorder {
	token := ""
	if as != nil {
		token = e.CreateJWT(as)
	}
	return e.Do(e.router, e.BuildAuthRequest(method, url, token, body))
}

// requireStatus fails with the body attached, which is what you want to see
// when a handler returns something unexpected.
func (e *env) requireStatus(rr *httptest.ResponseRecorder, status int) map[string]any {
	e.T.Helper()
	require.Equal(e.T, status, rr.Code, "body: %s", rr.Body.String())
	if rr.Body.Len() == 0 {
		return nil
	}
	return e.DecodeJSON(rr)
}

func (e *env) requireErrorCode(rr *httptest.ResponseRecorder, status int, code string) map[string]any {
	e.T.Helper()
	body := e.requireStatus(rr, status)
	assert.Equal(e.T, code, body["code"])
	return body
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	body := e.requireStatus(e.call(http.MethodGet, "/health", nil, nil), http.StatusOK)
	assert.Equal(t, "OK", body["status"])
}
