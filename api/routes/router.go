package routes

import (
	"net/http"
	"time"

	"bustix/internal/availability"
	"bustix/internal/bookings"
	"bustix/internal/locks"
	"bustix/internal/notifications"
	"bustix/internal/shared/config"
	"bustix/internal/shared/database"
	"bustix/internal/trips"
	"bustix/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	// Shared across modules after wiring
	tripService trips.Service
	lockRepo    locks.Repository
	lockService locks.Service
	bookingRepo bookings.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// LockService exposes the wired lock service so the caller can attach
// the background sweeper to it. Valid after SetupRoutes.
func (r *Router) LockService() locks.Service {
	return r.lockService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Trips first; locks and bookings depend on the trip service
		r.setupTripRoutes(api)
		r.setupLockRoutes(api)
		r.setupBookingRoutes(api)
		r.setupAvailabilityRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "bustix-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "bustix-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupTripRoutes configures trip catalog routes
func (r *Router) setupTripRoutes(rg *gin.RouterGroup) {
	cacheService := cache.NewService(r.db.GetRedisClient())

	tripRepo := trips.NewRepository(r.db.GetPostgreSQL())
	r.tripService = trips.NewService(tripRepo, cacheService, r.config.Redis.TripCacheTTL)
	tripController := trips.NewController(r.tripService)

	trips.SetupTripRoutes(rg, tripController, r.config)
}

// setupLockRoutes configures seat lock routes
func (r *Router) setupLockRoutes(rg *gin.RouterGroup) {
	atomic := locks.NewAtomicLockOps(r.db.GetRedisClient())
	r.lockRepo = locks.NewRepository(r.db.GetRedisClient(), atomic)

	r.bookingRepo = bookings.NewRepository(r.db.GetPostgreSQL())

	r.lockService = locks.NewService(r.lockRepo, r.tripService, r.bookingRepo, r.config.Locks.TTL)
	lockController := locks.NewController(r.lockService)

	locks.SetupLockRoutes(rg, lockController, r.config)
}

// setupBookingRoutes configures booking commit and ledger routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingService := bookings.NewService(r.bookingRepo, r.tripService, r.lockRepo, r.db.GetRedisClient(), r.producer)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController, r.config)
}

// setupAvailabilityRoutes configures seat availability routes
func (r *Router) setupAvailabilityRoutes(rg *gin.RouterGroup) {
	availabilityService := availability.NewService(r.tripService, r.lockRepo, r.bookingRepo)
	availabilityController := availability.NewController(availabilityService)

	availability.SetupAvailabilityRoutes(rg, availabilityController, r.config)
}
