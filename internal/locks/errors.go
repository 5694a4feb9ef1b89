package locks

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyLocked is the sentinel for a lost acquisition race. Use
	// errors.As with *AlreadyLockedError to recover the current holder.
	ErrAlreadyLocked = errors.New("seat already locked")

	// ErrSeatSold reports an acquire attempt on a permanently booked seat.
	ErrSeatSold = errors.New("seat already booked")

	// ErrNotHolder reports a release attempt by someone other than the
	// lock's holder.
	ErrNotHolder = errors.New("lock held by another user")

	// ErrUnknownSeat reports a seat label outside the trip's layout.
	ErrUnknownSeat = errors.New("seat does not exist on this trip")
)

// AlreadyLockedError carries the losing side of an acquisition race.
type AlreadyLockedError struct {
	TripID string
	Seat   string
	Holder string
}

func (e *AlreadyLockedError) Error() string {
	return fmt.Sprintf("seat %s on trip %s already locked", e.Seat, e.TripID)
}

func (e *AlreadyLockedError) Unwrap() error {
	return ErrAlreadyLocked
}
