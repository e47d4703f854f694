package testhelpers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
)

type memBookingRepo struct{ s *MemStore }

// findConflict mirrors the SQL: closed interval overlap over non-failed
// bookings, latest end date first. Caller holds mu.
func (r *memBookingRepo) findConflict(flatID uuid.UUID, start, end time.Time) *models.Booking {
	var best *models.Booking
	for _, b := range r.s.bookings {
		if b.FlatID != flatID || !b.Blocks(start, end) {
			continue
		}
		if best == nil || b.EndDate.After(best.EndDate) {
			best = b
		}
	}
	if best == nil {
		return nil
	}
	return copyBooking(best)
}

func (r *memBookingRepo) FindConflict(_ context.Context, flatID uuid.UUID, start, end time.Time) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.findConflict(flatID, start, end), nil
}

func (r *memBookingRepo) CreateWithNotification(
	_ context.Context,
	b *models.Booking,
	n *models.Notification,
	recipient uuid.UUID,
) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.flats[b.FlatID]; !ok {
		return nil, repositories.ErrFlatNotFound
	}
	if c := r.findConflict(b.FlatID, b.StartDate, b.EndDate); c != nil {
		return c, nil
	}

	b.CreatedAt = r.s.now()
	b.UpdatedAt = b.CreatedAt
	b.RowVersion = 1
	r.s.bookings[b.ID] = copyBooking(b)

	r.s.insertNotification(n, []uuid.UUID{recipient})
	return nil, nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.bookings[id]; ok {
		return copyBooking(b), nil
	}
	return nil, nil
}

func (r *memBookingRepo) GetByOrderID(_ context.Context, orderID string) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.PaymentOrderID == orderID {
			return copyBooking(b), nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Booking, error) {
	return r.filter(func(b *models.Booking) bool { return b.UserID == userID }, true), nil
}

func (r *memBookingRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*models.Booking, error) {
	return r.filter(func(b *models.Booking) bool {
		f, ok := r.s.flats[b.FlatID]
		return ok && f.OwnerID == ownerID
	}, true), nil
}

func (r *memBookingRepo) ListAll(_ context.Context) ([]*models.Booking, error) {
	return r.filter(func(*models.Booking) bool { return true }, true), nil
}

func (r *memBookingRepo) ListStalePending(_ context.Context, createdBefore time.Time) ([]*models.Booking, error) {
	return r.filter(func(b *models.Booking) bool {
		return b.PaymentStatus == models.PaymentStatusPending && b.CreatedAt.Before(createdBefore)
	}, false), nil
}

func (r *memBookingRepo) CountByStatus(_ context.Context) (map[models.PaymentStatus]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[models.PaymentStatus]int64{}
	for _, b := range r.s.bookings {
		out[b.PaymentStatus]++
	}
	return out, nil
}

func (r *memBookingRepo) UpdateIfVersion(_ context.Context, b *models.Booking, expected int64) (pgconn.CommandTag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.bookings[b.ID]
	if !ok || cur.RowVersion != expected {
		return tag(0), nil
	}
	cur.PaymentStatus = b.PaymentStatus
	cur.PaymentOrderID = b.PaymentOrderID
	cur.UpdatedAt = r.s.now()
	cur.RowVersion = expected + 1
	return tag(1), nil
}

func (r *memBookingRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Booking) error) error {
	return repositories.WithRetry(ctx, 3, id.String(),
		func(ctx context.Context, id string) (*models.Booking, error) {
			return r.GetByID(ctx, uuid.MustParse(id))
		},
		r.UpdateIfVersion, mutate)
}

func (r *memBookingRepo) filter(keep func(*models.Booking) bool, newestFirst bool) []*models.Booking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Booking{}
	for _, b := range r.s.bookings {
		if keep(b) {
			out = append(out, copyBooking(b))
		}
	}
	sortBy(out, func(b *models.Booking) int64 { return b.CreatedAt.UnixNano() }, newestFirst)
	return out
}

// BookingCount is the number of stored bookings on a flat.
func (s *MemStore) BookingCount(flatID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if b.FlatID == flatID {
			n++
		}
	}
	return n
}
