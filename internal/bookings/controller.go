package bookings

import (
	"errors"
	"net/http"

	"bustix/internal/shared/middleware"
	"bustix/internal/shared/utils/response"
	"bustix/internal/trips"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// BOOKING OPERATIONS

func (c *Controller) CommitBooking(ctx *gin.Context) {
	var req CommitBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	booking, err := c.service.CommitBooking(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		var sold *SeatAlreadySoldError
		switch {
		case errors.As(err, &sold):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Seat is already booked", nil, err.Error())
		case errors.Is(err, ErrDuplicateTransaction):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Transaction ID already used", nil, err.Error())
		case errors.Is(err, ErrNoSeats):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "No seats requested", nil, err.Error())
		case errors.Is(err, ErrTooManySeats):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Too many seats requested", nil, err.Error())
		case errors.Is(err, ErrUnknownSeat):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Seat does not exist on this trip", nil, err.Error())
		case errors.Is(err, trips.ErrNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Trip not found", nil, err.Error())
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to commit booking", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking committed successfully", booking, nil)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID := ctx.Param("bookingId")
	if bookingID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking ID is required", nil, "missing booking ID")
		return
	}

	role, _ := ctx.Get("user_role")
	roleStr, _ := role.(string)

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID, middleware.UserID(ctx), roleStr)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (c *Controller) ListMyBookings(ctx *gin.Context) {
	bookings, err := c.service.ListUserBookings(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

// ADMIN OPERATIONS

func (c *Controller) VerifyPayment(ctx *gin.Context) {
	bookingID := ctx.Param("bookingId")
	if bookingID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking ID is required", nil, "missing booking ID")
		return
	}

	booking, err := c.service.VerifyPayment(ctx.Request.Context(), bookingID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to verify payment", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment verified successfully", booking, nil)
}
