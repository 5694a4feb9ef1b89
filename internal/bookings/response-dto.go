package bookings

import "time"

// BookingResponse is the wire form of a booking.
type BookingResponse struct {
	ID              string    `json:"id"`
	TripID          string    `json:"trip_id"`
	UserID          string    `json:"user_id"`
	Seats           []string  `json:"seats"`
	TotalSeats      int       `json:"total_seats"`
	TotalPrice      float64   `json:"total_price"`
	TransactionID   string    `json:"transaction_id"`
	PaymentVerified bool      `json:"payment_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

func toBookingResponse(booking *Booking) BookingResponse {
	return BookingResponse{
		ID:              booking.ID.String(),
		TripID:          booking.TripID.String(),
		UserID:          booking.UserID,
		Seats:           booking.SeatLabels(),
		TotalSeats:      booking.TotalSeats,
		TotalPrice:      booking.TotalPrice,
		TransactionID:   booking.TransactionID,
		PaymentVerified: booking.PaymentVerified,
		CreatedAt:       booking.CreatedAt,
	}
}
