package testhelpers

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
)

type pairKey [2]uuid.UUID

// MemStore is an in-memory stand-in for the Postgres schema. Each fake
// repository takes the store mutex for the whole operation, which gives the
// same all-or-nothing behaviour the SQL implementations get from a single
// statement or transaction.
type MemStore struct {
	mu sync.Mutex

	users         map[uuid.UUID]*models.User
	addresses     map[uuid.UUID]*models.Address
	flats         map[uuid.UUID]*models.Flat
	ratings       map[pairKey]*models.Rating // (flat, user)
	favorites     map[pairKey]time.Time      // (user, flat)
	bookings      map[uuid.UUID]*models.Booking
	notifications map[uuid.UUID]*models.Notification
	inbox         map[pairKey]time.Time // (user, notification)
	chats         map[uuid.UUID]*models.Chat
	chatPairs     map[pairKey]uuid.UUID
	messages      map[uuid.UUID][]models.ChatMessage
	auditLogs     []*models.AdminAuditLog

	base time.Time
	tick int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:         map[uuid.UUID]*models.User{},
		addresses:     map[uuid.UUID]*models.Address{},
		flats:         map[uuid.UUID]*models.Flat{},
		ratings:       map[pairKey]*models.Rating{},
		favorites:     map[pairKey]time.Time{},
		bookings:      map[uuid.UUID]*models.Booking{},
		notifications: map[uuid.UUID]*models.Notification{},
		inbox:         map[pairKey]time.Time{},
		chats:         map[uuid.UUID]*models.Chat{},
		chatPairs:     map[pairKey]uuid.UUID{},
		messages:      map[uuid.UUID][]models.ChatMessage{},
		base:          time.Now().UTC().Truncate(time.Second),
	}
}

// now returns strictly increasing timestamps so ordering by creation time is
// deterministic. Caller holds mu.
func (s *MemStore) now() time.Time {
	s.tick++
	return s.base.Add(time.Duration(s.tick) * time.Millisecond)
}

// Backdate shifts a booking's creation time, for expiry tests.
func (s *MemStore) Backdate(bookingID uuid.UUID, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[bookingID]; ok {
		b.CreatedAt = b.CreatedAt.Add(-d)
	}
}

// AuditLogs returns a snapshot of recorded admin actions.
func (s *MemStore) AuditLogs() []*models.AdminAuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.AdminAuditLog(nil), s.auditLogs...)
}

// InboxSize counts inbox rows for a user.
func (s *MemStore) InboxSize(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.inbox {
		if k[0] == userID {
			n++
		}
	}
	return n
}

// NotificationExists reports whether the notification row is still present.
func (s *MemStore) NotificationExists(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.notifications[id]
	return ok
}

// NotificationCount is the number of stored notification rows.
func (s *MemStore) NotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

// Repositories bundles a fake for every repository interface.
type Repositories struct {
	Users         repositories.UserRepository
	Addresses     repositories.AddressRepository
	Flats         repositories.FlatRepository
	Ratings       repositories.RatingRepository
	Favorites     repositories.FavoriteRepository
	Bookings      repositories.BookingRepository
	Notifications repositories.NotificationRepository
	Chats         repositories.ChatRepository
	AuditLogs     repositories.AdminAuditLogRepository
}

func (s *MemStore) Repositories() Repositories {
	return Repositories{
		Users:         &memUserRepo{s},
		Addresses:     &memAddressRepo{s},
		Flats:         &memFlatRepo{s},
		Ratings:       &memRatingRepo{s},
		Favorites:     &memFavoriteRepo{s},
		Bookings:      &memBookingRepo{s},
		Notifications: &memNotificationRepo{s},
		Chats:         &memChatRepo{s},
		AuditLogs:     &memAuditLogRepo{s},
	}
}

func tag(n int) pgconn.CommandTag {
	if n == 1 {
		return pgconn.CommandTag("UPDATE 1")
	}
	return pgconn.CommandTag("UPDATE 0")
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyFlat(f *models.Flat) *models.Flat {
	c := *f
	c.Images = append([]string{}, f.Images...)
	c.Amenities = append([]models.Amenity{}, f.Amenities...)
	if f.Location != nil {
		loc := *f.Location
		c.Location = &loc
	}
	return &c
}

func copyBooking(b *models.Booking) *models.Booking {
	c := *b
	return &c
}
