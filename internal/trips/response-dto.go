package trips

import "time"

// TripResponse is the wire form of a trip, including the derived seat
// labels so clients never compute the layout themselves.
type TripResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Date          string    `json:"date"`
	DepartureTime string    `json:"departure_time"`
	ACType        string    `json:"ac_type"`
	TotalSeats    int       `json:"total_seats"`
	SeatPrice     float64   `json:"seat_price"`
	SeatLabels    []string  `json:"seat_labels,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toTripResponse(trip *Trip, labels []string) TripResponse {
	return TripResponse{
		ID:            trip.ID.String(),
		Name:          trip.Name,
		From:          trip.FromCity,
		To:            trip.ToCity,
		Date:          trip.TravelDate,
		DepartureTime: trip.DepartureTime,
		ACType:        trip.ACType,
		TotalSeats:    trip.TotalSeats,
		SeatPrice:     trip.SeatPrice,
		SeatLabels:    labels,
		CreatedAt:     trip.CreatedAt,
	}
}
