package availability

import "time"

// SeatStatus is the state of one seat as seen by one viewer at one
// instant. The same seat can be LOCKED_BY_ME for one viewer and
// LOCKED_BY_OTHER for everyone else.
type SeatStatus string

const (
	StatusAvailable     SeatStatus = "AVAILABLE"
	StatusLockedByMe    SeatStatus = "LOCKED_BY_ME"
	StatusLockedByOther SeatStatus = "LOCKED_BY_OTHER"
	StatusBooked        SeatStatus = "BOOKED"
)

// SeatView is one seat in a snapshot.
type SeatView struct {
	Seat          string     `json:"seat"`
	Status        SeatStatus `json:"status"`
	LockExpiresAt *time.Time `json:"lock_expires_at,omitempty"`
}

// SnapshotResponse is a point-in-time view of a trip's seats. It is
// advisory; only the commit transaction decides who gets a seat.
type SnapshotResponse struct {
	TripID     string     `json:"trip_id"`
	TotalSeats int        `json:"total_seats"`
	Available  int        `json:"available"`
	Seats      []SeatView `json:"seats"`
	AsOf       time.Time  `json:"as_of"`
}
