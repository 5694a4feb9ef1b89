package trips

import (
	"errors"
	"net/http"

	"bustix/internal/seatmap"
	"bustix/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// PUBLIC TRIP OPERATIONS

func (c *Controller) ListTrips(ctx *gin.Context) {
	var query TripListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	trips, err := c.service.ListTrips(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list trips", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Trips retrieved successfully", trips, nil)
}

func (c *Controller) GetTrip(ctx *gin.Context) {
	tripID := ctx.Param("tripId")
	if tripID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Trip ID is required", nil, "missing trip ID")
		return
	}

	trip, err := c.service.GetTrip(ctx.Request.Context(), tripID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get trip", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Trip retrieved successfully", trip, nil)
}

// ADMIN TRIP OPERATIONS

func (c *Controller) CreateTrip(ctx *gin.Context) {
	var req CreateTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	trip, err := c.service.CreateTrip(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, seatmap.ErrInvalidSeatCount) {
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Invalid seat count", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create trip", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Trip created successfully", trip, nil)
}
