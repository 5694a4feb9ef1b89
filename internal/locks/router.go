package locks

import (
	"bustix/internal/shared/config"
	"bustix/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLockRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {

	// USER LOCK OPERATIONS

	tripLocks := rg.Group("/trips/:tripId/locks")
	tripLocks.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
	{
		tripLocks.POST("", controller.AcquireLock)         // POST /api/v1/trips/:tripId/locks
		tripLocks.DELETE("/:seat", controller.ReleaseLock) // DELETE /api/v1/trips/:tripId/locks/:seat
		tripLocks.GET("", controller.GetTripLocks)         // GET /api/v1/trips/:tripId/locks
	}

	// ADMIN LOCK OPERATIONS

	adminLocks := rg.Group("/admin/locks")
	adminLocks.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminLocks.POST("/sweep", controller.SweepNow) // POST /api/v1/admin/locks/sweep
	}
}
