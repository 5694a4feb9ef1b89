package availability

import (
	"errors"
	"io"
	"net/http"
	"time"

	"bustix/internal/shared/middleware"
	"bustix/internal/shared/utils/response"
	"bustix/internal/trips"

	"github.com/gin-gonic/gin"
)

// streamInterval is how often the SSE stream re-snapshots. It is well
// under the lock TTL so clients see expiries close to when they happen.
const streamInterval = 2 * time.Second

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetSeatSnapshot(ctx *gin.Context) {
	tripID := ctx.Param("tripId")
	if tripID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Trip ID is required", nil, "missing trip ID")
		return
	}

	snapshot, err := c.service.Snapshot(ctx.Request.Context(), tripID, middleware.UserID(ctx))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, trips.ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get seat availability", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat availability retrieved successfully", snapshot, nil)
}

// StreamSeatSnapshots pushes availability snapshots over SSE until the
// client goes away. Each event is a full snapshot, not a delta, so a
// dropped event costs nothing.
func (c *Controller) StreamSeatSnapshots(ctx *gin.Context) {
	tripID := ctx.Param("tripId")
	if tripID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Trip ID is required", nil, "missing trip ID")
		return
	}
	viewer := middleware.UserID(ctx)

	// Validate the trip before switching the connection to event mode
	first, err := c.service.Snapshot(ctx.Request.Context(), tripID, viewer)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, trips.ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get seat availability", nil, err.Error())
		return
	}

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	ctx.SSEvent("snapshot", first)
	ctx.Writer.Flush()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Request.Context().Done():
			return false
		case <-ticker.C:
			snapshot, err := c.service.Snapshot(ctx.Request.Context(), tripID, viewer)
			if err != nil {
				return false
			}
			ctx.SSEvent("snapshot", snapshot)
			return true
		}
	})
}
