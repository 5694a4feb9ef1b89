package trips

// CreateTripRequest is the admin payload for scheduling a trip. The seat
// count must form whole rows; creation is the only gate, everything
// downstream assumes a valid layout.
type CreateTripRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=100"`
	From          string  `json:"from" binding:"required,min=2,max=60"`
	To            string  `json:"to" binding:"required,min=2,max=60"`
	Date          string  `json:"date" binding:"required,datetime=2006-01-02"`
	DepartureTime string  `json:"departure_time" binding:"required,datetime=15:04"`
	ACType        string  `json:"ac_type" binding:"required,oneof=AC NON_AC"`
	TotalSeats    int     `json:"total_seats" binding:"required,min=4"`
	SeatPrice     float64 `json:"seat_price" binding:"required,gt=0"`
}

// TripListQuery filters the public trip listing.
type TripListQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
	Date string `form:"date"`
}
