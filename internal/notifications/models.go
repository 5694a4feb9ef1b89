package notifications

import (
	"encoding/json"
	"time"
)

// Event types published to the ticket-events topic.
const (
	EventTicketConfirmed = "TICKET_CONFIRMED"
	EventPaymentVerified = "PAYMENT_VERIFIED"
)

// TicketEvent is the message body published after a booking state change.
// Consumers (email, push) live outside this service.
type TicketEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	TripID        string    `json:"trip_id"`
	UserID        string    `json:"user_id"`
	Seats         []string  `json:"seats,omitempty"`
	TotalPrice    float64   `json:"total_price,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ToJSON serializes the event for the wire.
func (e *TicketEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events of one trip to the same partition so
// consumers see them in order.
func (e *TicketEvent) PartitionKey() string {
	return e.TripID
}
