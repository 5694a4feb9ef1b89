package bookings

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a booking id with no matching row.
	ErrNotFound = errors.New("booking not found")

	// ErrNoSeats reports a commit request with an empty seat set.
	ErrNoSeats = errors.New("at least one seat per booking")

	// ErrTooManySeats reports a commit request over MaxSeatsPerBooking.
	ErrTooManySeats = fmt.Errorf("at most %d seats per booking", MaxSeatsPerBooking)

	// ErrUnknownSeat reports a seat label outside the trip's layout.
	ErrUnknownSeat = errors.New("seat does not exist on this trip")

	// ErrDuplicateTransaction reports a transaction id already used by
	// another booking.
	ErrDuplicateTransaction = errors.New("transaction id already used")

	// ErrSeatAlreadySold is the sentinel behind *SeatAlreadySoldError.
	ErrSeatAlreadySold = errors.New("seat already sold")
)

// SeatAlreadySoldError names the first seat that failed the sold check
// inside the commit transaction.
type SeatAlreadySoldError struct {
	TripID string
	Seat   string
}

func (e *SeatAlreadySoldError) Error() string {
	return fmt.Sprintf("seat %s on trip %s already sold", e.Seat, e.TripID)
}

func (e *SeatAlreadySoldError) Unwrap() error {
	return ErrSeatAlreadySold
}
