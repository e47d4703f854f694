package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// ErrFlatNotFound is returned by CreateWithNotification when the flat row
// disappeared before it could be locked.
var ErrFlatNotFound = errors.New("flat_not_found")

type BookingRepository interface {
	// FindConflict returns the non-failed booking on flatID whose closed
	// [start, end] range meets [start, end], preferring the latest end date.
	FindConflict(ctx context.Context, flatID uuid.UUID, start, end time.Time) (*models.Booking, error)

	// CreateWithNotification locks the flat row, re-checks for a conflict and,
	// if there is none, inserts the booking, the notification and the
	// recipient's inbox row in one transaction. A non-nil conflict means
	// nothing was written.
	CreateWithNotification(ctx context.Context, b *models.Booking, n *models.Notification, recipient uuid.UUID) (conflict *models.Booking, err error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Booking, error)
	ListAll(ctx context.Context) ([]*models.Booking, error)
	ListStalePending(ctx context.Context, createdBefore time.Time) ([]*models.Booking, error)
	CountByStatus(ctx context.Context) (map[models.PaymentStatus]int64, error)

	UpdateIfVersion(ctx context.Context, b *models.Booking, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Booking) error) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type bookingRepo struct {
	*BaseVersionedRepo[*models.Booking]
	db DB
}

func NewBookingRepository(db DB) BookingRepository {
	r := &bookingRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectBooking()+" WHERE b.id=$1", scanBooking)
	return r
}

const conflictWhere = `
    WHERE b.flat_id=$1
      AND b.payment_status <> 'failed'
      AND b.start_date <= $3
      AND b.end_date >= $2
    ORDER BY b.end_date DESC
    LIMIT 1`

func (r *bookingRepo) FindConflict(ctx context.Context, flatID uuid.UUID, start, end time.Time) (*models.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, baseSelectBooking()+conflictWhere, flatID, start, end))
}

func (r *bookingRepo) CreateWithNotification(
	ctx context.Context,
	b *models.Booking,
	n *models.Notification,
	recipient uuid.UUID,
) (*models.Booking, error) {
	var conflict *models.Booking
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var locked uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM flats WHERE id=$1 FOR UPDATE`, b.FlatID).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrFlatNotFound
			}
			return err
		}

		c, err := scanBooking(tx.QueryRow(ctx, baseSelectBooking()+conflictWhere, b.FlatID, b.StartDate, b.EndDate))
		if err != nil {
			return err
		}
		if c != nil {
			conflict = c
			return nil
		}

		err = tx.QueryRow(ctx, `
            INSERT INTO bookings (
                id, user_id, flat_id, start_date, end_date, payment_status,
                total_amount, payment_order_id, created_at, updated_at, row_version
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
            RETURNING created_at, updated_at
        `,
			b.ID, b.UserID, b.FlatID, b.StartDate, b.EndDate, string(b.PaymentStatus),
			b.TotalAmount, b.PaymentOrderID,
		).Scan(&b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return err
		}
		b.RowVersion = 1

		return insertNotification(ctx, tx, n, []uuid.UUID{recipient})
	})
	if err != nil {
		return nil, err
	}
	return conflict, nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *bookingRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, baseSelectBooking()+" WHERE b.payment_order_id=$1", orderID))
}

func (r *bookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error) {
	return r.list(ctx, baseSelectBooking()+" WHERE b.user_id=$1 ORDER BY b.created_at DESC", userID)
}

func (r *bookingRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Booking, error) {
	return r.list(ctx, baseSelectBooking()+`
        JOIN flats f ON f.id = b.flat_id
        WHERE f.owner_id=$1
        ORDER BY b.created_at DESC`, ownerID)
}

func (r *bookingRepo) ListAll(ctx context.Context) ([]*models.Booking, error) {
	return r.list(ctx, baseSelectBooking()+" ORDER BY b.created_at DESC")
}

func (r *bookingRepo) ListStalePending(ctx context.Context, createdBefore time.Time) ([]*models.Booking, error) {
	return r.list(ctx, baseSelectBooking()+`
        WHERE b.payment_status='pending' AND b.created_at < $1
        ORDER BY b.created_at`, createdBefore)
}

func (r *bookingRepo) CountByStatus(ctx context.Context) (map[models.PaymentStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT payment_status, COUNT(*) FROM bookings GROUP BY payment_status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.PaymentStatus]int64{}
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[models.PaymentStatus(status)] = n
	}
	return out, rows.Err()
}

func (r *bookingRepo) UpdateIfVersion(ctx context.Context, b *models.Booking, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE bookings SET
            payment_status=$1, payment_order_id=$2,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$3 AND row_version=$4
    `, string(b.PaymentStatus), b.PaymentOrderID, b.ID, expected)
}

func (r *bookingRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Booking) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *bookingRepo) list(ctx context.Context, sql string, args ...any) ([]*models.Booking, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func baseSelectBooking() string {
	return `
        SELECT
            b.id, b.user_id, b.flat_id, b.start_date, b.end_date, b.payment_status,
            b.total_amount, b.payment_order_id, b.created_at, b.updated_at, b.row_version
        FROM bookings b
    `
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var (
		b      models.Booking
		status string
	)
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.FlatID,
		&b.StartDate,
		&b.EndDate,
		&status,
		&b.TotalAmount,
		&b.PaymentOrderID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.RowVersion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	b.PaymentStatus = models.PaymentStatus(status)
	return &b, nil
}
