package bookings

import (
	"time"

	"github.com/google/uuid"
)

// MaxSeatsPerBooking caps one commit at a single row of seats.
const MaxSeatsPerBooking = 4

// Booking is one confirmed purchase. Bookings are immutable once
// committed except for the payment verification flag, which an admin
// flips from false to true.
type Booking struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string    `gorm:"index;not null" json:"user_id"`
	TripID          uuid.UUID `gorm:"type:uuid;index;not null" json:"trip_id"`
	TotalSeats      int       `gorm:"not null" json:"total_seats"`
	TotalPrice      float64   `gorm:"not null" json:"total_price"`
	TransactionID   string    `gorm:"unique;not null" json:"transaction_id"`
	PaymentVerified bool      `gorm:"not null;default:false" json:"payment_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Seats []BookingSeat `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// BookingSeat is one seat line item inside a booking.
type BookingSeat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	SeatLabel string    `gorm:"type:varchar(4);not null" json:"seat_label"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// TripSeat is the append-only sold ledger. One row exists per seat ever
// sold on a trip; the unique index is the last line of defense against a
// double sell, independent of any locking above it.
type TripSeat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TripID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_trip_seat_label" json:"trip_id"`
	SeatLabel string    `gorm:"type:varchar(4);not null;uniqueIndex:idx_trip_seat_label" json:"seat_label"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingSeat
func (BookingSeat) TableName() string {
	return "booking_seats"
}

// TableName sets the table name for TripSeat
func (TripSeat) TableName() string {
	return "trip_seats"
}

// SeatLabels returns the booked seat labels in insertion order.
func (b *Booking) SeatLabels() []string {
	labels := make([]string, 0, len(b.Seats))
	for _, seat := range b.Seats {
		labels = append(labels, seat.SeatLabel)
	}
	return labels
}
