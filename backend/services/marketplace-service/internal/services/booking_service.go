package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/constants"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	internal_utils "github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/utils"
	shared "github.com/road2tec/girha-setu-sub000/backend/shared/go-dtos"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-repositories"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/sirupsen/logrus"
)

// CreateBookingInput is a validated booking request.
type CreateBookingInput struct {
	UserID      uuid.UUID
	FlatID      uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	TotalAmount int64
}

// BookingEvent is the payload of booking.* domain events.
type BookingEvent struct {
	BookingID     uuid.UUID            `json:"bookingId"`
	FlatID        uuid.UUID            `json:"flatId"`
	UserID        uuid.UUID            `json:"userId"`
	StartDate     string               `json:"startDate"`
	EndDate       string               `json:"endDate"`
	TotalAmount   int64                `json:"totalAmount"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
}

func newBookingEvent(b *models.Booking) BookingEvent {
	return BookingEvent{
		BookingID:     b.ID,
		FlatID:        b.FlatID,
		UserID:        b.UserID,
		StartDate:     b.StartDate.Format(utils.DateLayout),
		EndDate:       b.EndDate.Format(utils.DateLayout),
		TotalAmount:   b.TotalAmount,
		PaymentStatus: b.PaymentStatus,
	}
}

type BookingService struct {
	bookings repositories.BookingRepository
	flats    repositories.FlatRepository
	users    repositories.UserRepository
	notifier *NotificationService
	payments PaymentGateway
	mailer   Mailer
	sms      SMSSender
	events   EventPublisher
	now      func() time.Time
}

func NewBookingService(
	bookings repositories.BookingRepository,
	flats repositories.FlatRepository,
	users repositories.UserRepository,
	notifier *NotificationService,
	payments PaymentGateway,
	mailer Mailer,
	sms SMSSender,
	events EventPublisher,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		flats:    flats,
		users:    users,
		notifier: notifier,
		payments: payments,
		mailer:   mailer,
		sms:      sms,
		events:   events,
		now:      time.Now,
	}
}

// CreateBooking checks availability, opens a payment order and persists the
// pending booking together with the owner's notification. The repository
// re-checks availability under a row lock on the flat; if it loses the race
// the payment order is cancelled.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*dtos.CreateBookingResponse, error) {
	if !in.EndDate.After(in.StartDate) {
		return nil, utils.NewBadRequest(utils.ErrCodeValidation, "endDate must be after startDate", internal_utils.ErrInvalidDateRange)
	}
	if in.TotalAmount <= 0 {
		return nil, utils.NewBadRequest(utils.ErrCodeValidation, "totalAmount must be positive", internal_utils.ErrMissingFields)
	}
	if in.TotalAmount > constants.MaxTotalAmount {
		return nil, utils.NewBadRequest(utils.ErrCodeValidation, "totalAmount is too large", nil)
	}

	flat, err := s.flats.GetByID(ctx, in.FlatID)
	if err != nil {
		return nil, utils.NewInternal("Failed to load flat", err)
	}
	if flat == nil {
		return nil, utils.NewNotFound("Flat not found", internal_utils.ErrNotFound)
	}
	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, utils.NewInternal("Failed to load user", err)
	}
	if user == nil {
		return nil, utils.NewNotFound("User not found", internal_utils.ErrNotFound)
	}
	if !user.Role.CanBook() {
		return nil, utils.NewForbidden("Only buyers can book flats")
	}

	conflict, err := s.bookings.FindConflict(ctx, flat.ID, in.StartDate, in.EndDate)
	if err != nil {
		return nil, utils.NewInternal("Failed to check availability", err)
	}
	if conflict != nil {
		return nil, internal_utils.NewBookingConflict(conflict.EndDate)
	}

	amountMinor := internal_utils.MinorUnits(in.TotalAmount, constants.MinorUnitsPerRupee)
	bookingID := uuid.New()
	order, err := s.payments.CreateOrder(ctx, amountMinor, constants.Currency, map[string]string{
		"booking_id": bookingID.String(),
		"flat_id":    flat.ID.String(),
		"user_id":    user.ID.String(),
	})
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: 502,
			Code:       utils.ErrCodeExternalService,
			Message:    "Failed to create payment order",
			Err:        err,
		}
	}

	booking := &models.Booking{
		ID:             bookingID,
		UserID:         user.ID,
		FlatID:         flat.ID,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		PaymentStatus:  models.PaymentStatusPending,
		TotalAmount:    in.TotalAmount,
		PaymentOrderID: order.ID,
	}
	flatID := flat.ID
	msg := fmt.Sprintf("%s booked %s from %s to %s",
		user.Name, flat.Title,
		in.StartDate.Format(utils.DateLayout), in.EndDate.Format(utils.DateLayout))
	note := newNotification(models.NotificationBookingUpdate, &flatID, msg)

	conflict, err = s.bookings.CreateWithNotification(ctx, booking, note, flat.OwnerID)
	if err != nil || conflict != nil {
		s.cancelOrder(ctx, order.ID)
	}
	switch {
	case errors.Is(err, repositories.ErrFlatNotFound):
		return nil, utils.NewNotFound("Flat not found", internal_utils.ErrNotFound)
	case err != nil:
		return nil, utils.NewInternal("Failed to create booking", err)
	case conflict != nil:
		return nil, internal_utils.NewBookingConflict(conflict.EndDate)
	}

	utils.Logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"flat_id":    flat.ID,
		"order_id":   order.ID,
	}).Info("Booking created, awaiting payment")

	s.emailOwnerNewBooking(ctx, flat, msg)
	publishBestEffort(ctx, s.events, constants.EventBookingCreated, newBookingEvent(booking))

	return &dtos.CreateBookingResponse{
		Message:      "Booking created successfully",
		Booking:      booking,
		OrderID:      order.ID,
		Amount:       amountMinor,
		ClientSecret: order.ClientSecret,
	}, nil
}

func (s *BookingService) cancelOrder(ctx context.Context, orderID string) {
	if err := s.payments.CancelOrder(ctx, orderID); err != nil {
		utils.Logger.WithError(err).WithField("order_id", orderID).Error("Failed to cancel payment order")
	}
}

func (s *BookingService) emailOwnerNewBooking(ctx context.Context, flat *models.Flat, summary string) {
	owner, err := s.users.GetByID(ctx, flat.OwnerID)
	if err != nil || owner == nil {
		utils.Logger.WithError(err).WithField("owner_id", flat.OwnerID).Warn("Owner not found for booking email")
		return
	}
	html := fmt.Sprintf("<p>Hi %s,</p><p>%s.</p><p>The booking is awaiting payment.</p>", owner.Name, summary)
	if err := s.mailer.SendEmail(ctx, owner.Name, owner.Email, constants.EmailSubjectNewBooking, summary, html); err != nil {
		utils.Logger.WithError(err).Warn("Failed to send new booking email")
	}
}

// ListBookings returns bookings visible to the user: their own for buyers,
// those on their flats for owners, all for admins.
func (s *BookingService) ListBookings(ctx context.Context, userID uuid.UUID) (*dtos.ListBookingsResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.NewInternal("Failed to load user", err)
	}
	if user == nil {
		return nil, utils.NewNotFound("User not found", internal_utils.ErrNotFound)
	}

	var bookings []*models.Booking
	switch user.Role {
	case models.RoleBuyer:
		bookings, err = s.bookings.ListByUser(ctx, user.ID)
	case models.RoleOwner:
		bookings, err = s.bookings.ListByOwner(ctx, user.ID)
	case models.RoleAdmin:
		bookings, err = s.bookings.ListAll(ctx)
	default:
		return nil, utils.NewForbidden("Unknown role")
	}
	if err != nil {
		return nil, utils.NewInternal("Failed to load bookings", err)
	}

	views, err := s.populate(ctx, bookings)
	if err != nil {
		return nil, utils.NewInternal("Failed to load bookings", err)
	}
	return &dtos.ListBookingsResponse{Message: "Bookings fetched successfully", Bookings: views}, nil
}

func (s *BookingService) populate(ctx context.Context, bookings []*models.Booking) ([]*dtos.BookingView, error) {
	userIDs := make([]uuid.UUID, 0, len(bookings))
	flats := make(map[uuid.UUID]*models.Flat)
	for _, b := range bookings {
		userIDs = append(userIDs, b.UserID)
		if _, ok := flats[b.FlatID]; ok {
			continue
		}
		f, err := s.flats.GetByID(ctx, b.FlatID)
		if err != nil {
			return nil, err
		}
		flats[b.FlatID] = f
	}
	users, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*dtos.BookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, &dtos.BookingView{
			ID:            b.ID.String(),
			Property:      shared.NewFlatSummary(flats[b.FlatID]),
			User:          shared.NewUserSummary(users[b.UserID]),
			StartDate:     b.StartDate.Format(utils.DateLayout),
			EndDate:       b.EndDate.Format(utils.DateLayout),
			PaymentStatus: b.PaymentStatus,
			TotalAmount:   b.TotalAmount,
			OrderID:       b.PaymentOrderID,
			CreatedAt:     b.CreatedAt,
		})
	}
	return out, nil
}

// HandlePaymentSucceeded completes the booking behind a gateway order.
func (s *BookingService) HandlePaymentSucceeded(ctx context.Context, orderID string) error {
	b, changed, err := s.transition(ctx, orderID, models.PaymentStatusCompleted)
	if err != nil || !changed {
		return err
	}
	s.afterPaymentCompleted(ctx, b)
	return nil
}

// HandlePaymentFailed marks the booking failed, freeing its dates.
func (s *BookingService) HandlePaymentFailed(ctx context.Context, orderID string) error {
	b, changed, err := s.transition(ctx, orderID, models.PaymentStatusFailed)
	if err != nil || !changed {
		return err
	}
	publishBestEffort(ctx, s.events, constants.EventBookingPaymentUpdate, newBookingEvent(b))
	return nil
}

// transition moves the booking for orderID to next. Replays of the same
// transition are no-ops; anything else out of a terminal state is an error.
func (s *BookingService) transition(
	ctx context.Context,
	orderID string,
	next models.PaymentStatus,
) (*models.Booking, bool, error) {
	existing, err := s.bookings.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, false, utils.NewInternal("Failed to load booking", err)
	}
	if existing == nil {
		return nil, false, utils.NewNotFound("No booking for payment order", internal_utils.ErrNotFound)
	}
	return s.transitionBooking(ctx, existing.ID, next)
}

func (s *BookingService) transitionBooking(
	ctx context.Context,
	bookingID uuid.UUID,
	next models.PaymentStatus,
) (*models.Booking, bool, error) {
	var (
		updated *models.Booking
		replay  bool
	)
	err := s.bookings.UpdateWithRetry(ctx, bookingID, func(b *models.Booking) error {
		if b.PaymentStatus == next {
			replay = true
			return errNoChange
		}
		if !b.PaymentStatus.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", internal_utils.ErrInvalidTransition, b.PaymentStatus, next)
		}
		b.PaymentStatus = next
		updated = b
		return nil
	})
	switch {
	case errors.Is(err, errNoChange) && replay:
		utils.Logger.WithField("booking_id", bookingID).Debugf("Booking already %s", next)
		return nil, false, nil
	case errors.Is(err, internal_utils.ErrInvalidTransition):
		return nil, false, utils.NewConflict(utils.ErrCodeConflict, "Booking payment already settled", nil, err)
	case errors.Is(err, pgx.ErrNoRows):
		return nil, false, utils.NewNotFound("Booking not found", internal_utils.ErrNotFound)
	case errors.Is(err, utils.ErrRowVersionConflict):
		return nil, false, utils.NewConflict(utils.ErrCodeRowVersionConflict, "Booking was modified concurrently", nil, err)
	case err != nil:
		return nil, false, utils.NewInternal("Failed to update booking", err)
	}

	utils.Logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"status":     next,
	}).Info("Booking payment status updated")
	return updated, true, nil
}

var errNoChange = errors.New("no change")

func (s *BookingService) afterPaymentCompleted(ctx context.Context, b *models.Booking) {
	flat, err := s.flats.GetByID(ctx, b.FlatID)
	if err != nil || flat == nil {
		utils.Logger.WithError(err).WithField("flat_id", b.FlatID).Warn("Flat missing after payment")
		return
	}
	summary := fmt.Sprintf("Payment received for %s from %s to %s",
		flat.Title, b.StartDate.Format(utils.DateLayout), b.EndDate.Format(utils.DateLayout))

	flatID := flat.ID
	if err := s.notifier.NotifyUser(ctx, b.UserID, models.NotificationBookingUpdate, &flatID, summary); err != nil {
		utils.Logger.WithError(err).Warn("Failed to notify buyer of payment")
	}

	if buyer, err := s.users.GetByID(ctx, b.UserID); err == nil && buyer != nil {
		html := fmt.Sprintf("<p>Hi %s,</p><p>%s. Amount paid: ₹%d.</p>", buyer.Name, summary, b.TotalAmount)
		if err := s.mailer.SendEmail(ctx, buyer.Name, buyer.Email, constants.EmailSubjectPaymentReceipt, summary, html); err != nil {
			utils.Logger.WithError(err).Warn("Failed to send payment receipt")
		}
	}
	if owner, err := s.users.GetByID(ctx, flat.OwnerID); err == nil && owner != nil && owner.Phone != "" {
		if err := s.sms.SendSMS(ctx, owner.Phone, fmt.Sprintf("%s: %s", utils.OrganizationName, summary)); err != nil {
			utils.Logger.WithError(err).Warn("Failed to SMS owner")
		}
	}
	publishBestEffort(ctx, s.events, constants.EventBookingPaymentUpdate, newBookingEvent(b))
}

// ExpireStalePending settles bookings that waited longer than
// PendingBookingTTL for payment. A booking is failed only after its order is
// cancelled or the gateway reports it cancelled; an order the gateway reports
// paid completes the booking instead. Orders in any other state stay pending
// until a later sweep.
func (s *BookingService) ExpireStalePending(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-constants.PendingBookingTTL)
	stale, err := s.bookings.ListStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, b := range stale {
		next, ok := s.staleOutcome(ctx, b)
		if !ok {
			continue
		}
		updated, changed, err := s.transitionBooking(ctx, b.ID, next)
		if err != nil {
			// Settled by the webhook in the meantime.
			utils.Logger.WithError(err).WithField("booking_id", b.ID).Debug("Skipping stale booking")
			continue
		}
		if !changed {
			continue
		}
		if next == models.PaymentStatusCompleted {
			s.afterPaymentCompleted(ctx, updated)
			continue
		}
		expired++
		publishBestEffort(ctx, s.events, constants.EventBookingPaymentUpdate, newBookingEvent(updated))
	}
	if expired > 0 {
		utils.Logger.Infof("Expired %d stale pending bookings", expired)
	}
	return expired, nil
}

func (s *BookingService) staleOutcome(ctx context.Context, b *models.Booking) (models.PaymentStatus, bool) {
	if b.PaymentOrderID == "" {
		return models.PaymentStatusFailed, true
	}
	log := utils.Logger.WithFields(logrus.Fields{"booking_id": b.ID, "order_id": b.PaymentOrderID})

	cancelErr := s.payments.CancelOrder(ctx, b.PaymentOrderID)
	if cancelErr == nil {
		return models.PaymentStatusFailed, true
	}
	status, err := s.payments.GetOrderStatus(ctx, b.PaymentOrderID)
	if err != nil {
		log.WithError(err).WithField("cancel_error", cancelErr.Error()).Warn("Stale booking order unresolved, retrying next sweep")
		return "", false
	}
	switch status {
	case OrderStatusSucceeded:
		log.Warn("Stale booking was paid without a webhook; completing it")
		return models.PaymentStatusCompleted, true
	case OrderStatusCanceled:
		return models.PaymentStatusFailed, true
	default:
		log.WithError(cancelErr).Warn("Stale booking order could not be cancelled, retrying next sweep")
		return "", false
	}
}
