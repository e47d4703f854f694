package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/dtos"
	"github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/services"
	internal_utils "github.com/road2tec/girha-setu-sub000/backend/services/marketplace-service/internal/utils"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

type BookingController struct {
	bookingService *services.BookingService
	validate       *validator.Validate
}

func NewBookingController(s *services.BookingService) *BookingController {
	return &BookingController{bookingService: s, validate: validator.New()}
}

// POST /api/bookings/add
func (c *BookingController) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateBookingRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	userID := mustUUID(req.UserID)
	if !authorizeSubject(w, r, userID) {
		return
	}

	start, err := internal_utils.ParseDate(req.StartDate)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid startDate", nil, err)
		return
	}
	end, err := internal_utils.ParseDate(req.EndDate)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid endDate", nil, err)
		return
	}

	resp, err := c.bookingService.CreateBooking(r.Context(), services.CreateBookingInput{
		UserID:      userID,
		FlatID:      mustUUID(req.FlatID),
		StartDate:   start,
		EndDate:     end,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// GET /api/bookings/getBookings
func (c *BookingController) ListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := c.bookingService.ListBookings(r.Context(), userID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
