package bookings

// CommitBookingRequest turns a set of held seats into a booking. Every
// listed seat must be under a live lock owned by the caller.
type CommitBookingRequest struct {
	TripID        string   `json:"trip_id" binding:"required,uuid"`
	Seats         []string `json:"seats" binding:"required,min=1,max=4,dive,seatlabel"`
	TransactionID string   `json:"transaction_id" binding:"required,min=6,max=100"`
}
