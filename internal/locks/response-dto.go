package locks

import "time"

// LockResponse is the wire form of a live seat lock.
type LockResponse struct {
	TripID    string    `json:"trip_id"`
	Seat      string    `json:"seat"`
	Holder    string    `json:"holder"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SweepResponse reports how many expired records a sweep removed.
type SweepResponse struct {
	Removed int `json:"removed"`
}

func toLockResponse(lock *Lock) LockResponse {
	return LockResponse{
		TripID:    lock.TripID,
		Seat:      lock.Seat,
		Holder:    lock.Holder,
		ExpiresAt: lock.ExpiresAt(),
	}
}
