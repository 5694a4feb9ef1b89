package trips

import (
	"bustix/internal/shared/config"
	"bustix/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTripRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {

	// PUBLIC TRIP OPERATIONS

	trips := rg.Group("/trips")
	{
		trips.GET("", controller.ListTrips)        // GET /api/v1/trips?from=X&to=Y&date=Z
		trips.GET("/:tripId", controller.GetTrip)  // GET /api/v1/trips/:tripId
	}

	// ADMIN TRIP OPERATIONS

	adminTrips := rg.Group("/admin/trips")
	adminTrips.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminTrips.POST("", controller.CreateTrip) // POST /api/v1/admin/trips
	}
}
