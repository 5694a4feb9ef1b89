package bookings

import (
	"bustix/internal/shared/config"
	"bustix/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {

	// USER BOOKING OPERATIONS

	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
	{
		bookings.POST("", controller.CommitBooking)          // POST /api/v1/bookings
		bookings.GET("/:bookingId", controller.GetBooking)   // GET /api/v1/bookings/:bookingId
	}

	me := rg.Group("/me")
	me.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
	{
		me.GET("/bookings", controller.ListMyBookings) // GET /api/v1/me/bookings
	}

	// ADMIN BOOKING OPERATIONS

	adminBookings := rg.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminBookings.PATCH("/:bookingId/verify", controller.VerifyPayment) // PATCH /api/v1/admin/bookings/:bookingId/verify
	}
}
