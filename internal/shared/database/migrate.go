package database

import (
	"bustix/internal/bookings"
	"bustix/internal/trips"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&trips.Trip{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
		&bookings.TripSeat{},
	)
}
