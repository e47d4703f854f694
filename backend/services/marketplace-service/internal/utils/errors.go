package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

/*
Sentinel errors for marketplace domain logic.
Services wrap them in *utils.AppError; tests can errors.Is against them.
*/
var (
	ErrMissingFields      = errors.New("missing_fields")
	ErrInvalidDateRange   = errors.New("invalid_date_range")
	ErrBookingConflict    = errors.New("booking_conflict")
	ErrAlreadyWishlisted  = errors.New("already_wishlisted")
	ErrNotWishlisted      = errors.New("not_wishlisted")
	ErrNotFound           = errors.New("not_found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid_payment_transition")
	ErrSelfChat           = errors.New("self_chat")
	ErrOwnerNotApproved   = errors.New("owner_not_approved")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

/*
BookingConflictError carries the end date of the booking that blocks the
requested range so the client can show "booked until".
*/
type BookingConflictError struct {
	ConflictingEnd time.Time
}

func (e *BookingConflictError) Error() string {
	return fmt.Sprintf("Flat already booked until %s", e.ConflictingEnd.Format(utils.DateLayout))
}

func (e *BookingConflictError) Unwrap() error { return ErrBookingConflict }

// NewBookingConflict maps the conflict to a 409 AppError.
func NewBookingConflict(end time.Time) *utils.AppError {
	cerr := &BookingConflictError{ConflictingEnd: end}
	return utils.NewConflict(
		utils.ErrCodeBookingConflict,
		cerr.Error(),
		map[string]string{"endDate": end.Format(utils.DateLayout)},
		cerr,
	)
}
