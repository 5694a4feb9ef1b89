package trips

import (
	"time"

	"github.com/google/uuid"
)

// Trip is one scheduled bus departure. Seat labels are not stored; they
// are derived from TotalSeats by the seatmap package, so TotalSeats is
// immutable once the trip exists.
type Trip struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	FromCity      string    `gorm:"column:from_city;index;not null" json:"from"`
	ToCity        string    `gorm:"column:to_city;index;not null" json:"to"`
	TravelDate    string    `gorm:"column:travel_date;index;not null" json:"date"`
	DepartureTime string    `gorm:"column:departure_time;not null" json:"departure_time"`
	ACType        string    `gorm:"column:ac_type;type:varchar(20)" json:"ac_type"`
	TotalSeats    int       `gorm:"not null" json:"total_seats"`
	SeatPrice     float64   `gorm:"not null" json:"seat_price"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName sets the table name for Trip
func (Trip) TableName() string {
	return "trips"
}
