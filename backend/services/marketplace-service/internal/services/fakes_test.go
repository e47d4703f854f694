package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-testhelpers"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayments struct {
	mu         sync.Mutex
	seq        int
	created    []*PaymentOrder
	cancelled  []string
	failCreate error
	// failCancel makes CancelOrder refuse, as Stripe does for a PaymentIntent
	// that already succeeded.
	failCancel error
	statuses   map[string]OrderStatus
}

func (f *fakePayments) CreateOrder(_ context.Context, amountMinor int64, currency string, _ map[string]string) (*PaymentOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.seq++
	id := fmt.Sprintf("pi_test_%d", f.seq)
	o := &PaymentOrder{ID: id, ClientSecret: id + "_secret", Amount: amountMinor, Currency: currency}
	f.created = append(f.created, o)
	return o, nil
}

func (f *fakePayments) CancelOrder(_ context.Context, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCancel != nil {
		return f.failCancel
	}
	f.cancelled = append(f.cancelled, orderID)
	f.setStatus(orderID, OrderStatusCanceled)
	return nil
}

func (f *fakePayments) GetOrderStatus(_ context.Context, orderID string) (OrderStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.statuses[orderID]; ok {
		return st, nil
	}
	return OrderStatusOpen, nil
}

// markPaid records orderID as succeeded at the gateway without any webhook.
func (f *fakePayments) markPaid(orderID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setStatus(orderID, OrderStatusSucceeded)
}

func (f *fakePayments) setStatus(orderID string, st OrderStatus) {
	if f.statuses == nil {
		f.statuses = map[string]OrderStatus{}
	}
	f.statuses[orderID] = st
}

type sentEmail struct {
	To      string
	Subject string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (f *fakeMailer) SendEmail(_ context.Context, _, toEmail, subject, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{To: toEmail, Subject: subject})
	return nil
}

type fakeSMS struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSMS) SendSMS(_ context.Context, to, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

func (p *recordingPublisher) count(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, k := range p.keys {
		if k == key {
			n++
		}
	}
	return n
}

type fakeGeocoder struct {
	lat, lng float64
	err      error
	calls    int
}

func (g *fakeGeocoder) Geocode(_ context.Context, _ string) (float64, float64, error) {
	g.calls++
	return g.lat, g.lng, g.err
}

type fakeImageStore struct {
	keys []string
}

func (s *fakeImageStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	return "https://images.girhasetu.test/" + key, nil
}

// fixture wires every service over the in-memory store.
type fixture struct {
	h        *testhelpers.TestHelper
	payments *fakePayments
	mailer   *fakeMailer
	sms      *fakeSMS
	events   *recordingPublisher
	geocoder *fakeGeocoder

	notifications *NotificationService
	bookings      *BookingService
	wishlist      *WishlistService
	chats         *ChatService
	flats         *FlatService
	admin         *AdminService
}

func newFixture(t *testing.T, opts ...func(*fixtureOptions)) *fixture {
	t.Helper()
	o := fixtureOptions{}
	for _, fn := range opts {
		fn(&o)
	}

	h := testhelpers.NewTestHelper(t)
	f := &fixture{
		h:        h,
		payments: &fakePayments{},
		mailer:   &fakeMailer{},
		sms:      &fakeSMS{},
		events:   &recordingPublisher{},
		geocoder: &fakeGeocoder{lat: 18.5204, lng: 73.8567},
	}
	f.notifications = NewNotificationService(h.Notifications)
	f.bookings = NewBookingService(h.Bookings, h.Flats, h.Users, f.notifications, f.payments, f.mailer, f.sms, f.events)
	f.wishlist = NewWishlistService(h.Favorites, h.Users, h.Flats)
	f.chats = NewChatService(h.Chats, h.Users)

	var images ImageStore
	if o.images != nil {
		images = o.images
	}
	f.flats = NewFlatService(h.Flats, h.Ratings, h.Users, f.notifications, f.geocoder, o.cache, images, f.events)
	f.admin = NewAdminService(h.Users, h.Flats, h.Bookings, h.AuditLogs, f.flats, f.notifications)
	return f
}

type fixtureOptions struct {
	cache  *ListingCache
	images *fakeImageStore
}

func withCache(c *ListingCache) func(*fixtureOptions) {
	return func(o *fixtureOptions) { o.cache = c }
}

func withImages(s *fakeImageStore) func(*fixtureOptions) {
	return func(o *fixtureOptions) { o.images = s }
}

// requireAppError asserts err is an *utils.AppError with the given status
// and, when non-empty, code.
func requireAppError(t *testing.T, err error, status int, code string) *utils.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *utils.AppError, got %T: %v", err, err)
	assert.Equal(t, status, appErr.StatusCode, "message: %s", appErr.Message)
	if code != "" {
		assert.Equal(t, code, appErr.Code)
	}
	return appErr
}
