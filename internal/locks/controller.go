package locks

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

// LOCK OPERATIONS

func (c *Controller) AcquireLock(ctx *gin.Context) {
	tripID := ctx.Param("tripId")
	if tripID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Trip ID is required", nil, "missing trip ID")
		return
	}

	var req AcquireLockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	lock, err := c.service.Acquire(ctx.Request.Context(), tripID, req.Seat, middleware.UserID(ctx))
	if err != nil {
		var conflict *AlreadyLockedError
		switch {
		case errors.As(err, &conflict):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Seat is locked by another user", nil, err.Error())
		case errors.Is(err, ErrSeatSold):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Seat is already booked", nil, err.Error())
		case errors.Is(err, ErrUnknownSeat):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Seat does not exist on this trip", nil, err.Error())
		case errors.Is(err, trips.ErrNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Trip not found", nil, err.Error())
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to lock seat", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat locked successfully", lock, nil)
}

func (c *Controller) ReleaseLock(ctx *gin.Context) {
	tripID := ctx.Param("tripId")
	seat := ctx.Param("seat")
	if tripID == "" || seat == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Trip ID and seat are required", nil, "missing parameters")
		return
	}

	err := c.service.Release(ctx.Request.Context(), tripID, seat, middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, ErrNotHolder) {
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Seat is locked by another user", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to release seat", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat released successfully", nil, nil)
}

func (c *Controller) GetTripLocks(ctx *gin.Context) {
	tripID := ctx.Param("tripId")
	if tripID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Trip ID is required", nil, "missing trip ID")
		return
	}

	held, err := c.service.HeldSeats(ctx.Request.Context(), tripID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get locks", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Locks retrieved successfully", held, nil)
}

// ADMIN OPERATIONS

func (c *Controller) SweepNow(ctx *gin.Context) {
	removed, err := c.service.SweepAll(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to sweep locks", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Sweep completed", SweepResponse{Removed: removed}, nil)
}
