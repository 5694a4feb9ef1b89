package availability

import (
	"context"
	"time"

	"bustix/internal/bookings"
	"bustix/internal/locks"
	"bustix/internal/seatmap"
	"bustix/internal/trips"
	"bustix/pkg/logger"
)

type Service interface {
	Snapshot(ctx context.Context, tripID, viewer string) (*SnapshotResponse, error)
}

type service struct {
	trips  trips.Service
	locks  locks.Repository
	ledger bookings.Repository
	logger *logger.Logger
}

func NewService(tripService trips.Service, lockRepo locks.Repository, ledger bookings.Repository) Service {
	return &service{
		trips:  tripService,
		locks:  lockRepo,
		ledger: ledger,
		logger: logger.GetDefault(),
	}
}

// Snapshot classifies every seat of a trip from the viewer's
// perspective. Sold wins over locked: a seat both in the ledger and
// under a stale lock reads as BOOKED.
func (s *service) Snapshot(ctx context.Context, tripID, viewer string) (*SnapshotResponse, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}

	labels, err := seatmap.LabelsFor(trip.TotalSeats)
	if err != nil {
		return nil, err
	}

	// Opportunistic cleanup so lock SCANs on hot trips stay short
	if _, err := s.locks.SweepTrip(ctx, tripID); err != nil {
		s.logger.WithError(err).Warn("Opportunistic lock sweep failed", "trip_id", tripID)
	}

	sold, err := s.ledger.SoldSeats(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	held, err := s.locks.HeldSeats(ctx, tripID)
	if err != nil {
		return nil, err
	}

	seats := make([]SeatView, 0, len(labels))
	available := 0
	for _, label := range labels {
		view := SeatView{Seat: label, Status: StatusAvailable}

		switch {
		case sold[label]:
			view.Status = StatusBooked
		case held[label] != nil:
			lock := held[label]
			expires := lock.ExpiresAt()
			view.LockExpiresAt = &expires
			if viewer != "" && lock.Holder == viewer {
				view.Status = StatusLockedByMe
			} else {
				view.Status = StatusLockedByOther
			}
		default:
			available++
		}

		seats = append(seats, view)
	}

	return &SnapshotResponse{
		TripID:     tripID,
		TotalSeats: trip.TotalSeats,
		Available:  available,
		Seats:      seats,
		AsOf:       time.Now(),
	}, nil
}
