package locks

// AcquireLockRequest asks for a short-lived exclusive claim on one seat.
type AcquireLockRequest struct {
	Seat string `json:"seat" binding:"required,seatlabel"`
}
