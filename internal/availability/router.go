package availability

import (
	"bustix/internal/shared/config"
	"bustix/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAvailabilityRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {

	seats := rg.Group("/trips/:tripId/seats")
	seats.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
	{
		seats.GET("", controller.GetSeatSnapshot)            // GET /api/v1/trips/:tripId/seats
		seats.GET("/stream", controller.StreamSeatSnapshots) // GET /api/v1/trips/:tripId/seats/stream
	}
}
