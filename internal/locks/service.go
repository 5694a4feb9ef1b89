package locks

import (
	"context"
	"fmt"
	"time"

	"bustix/internal/seatmap"
	"bustix/pkg/logger"
)

// TripCatalog is the slice of trip data lock validation needs. The trips
// module satisfies it; keeping it local avoids an import cycle.
type TripCatalog interface {
	SeatCount(ctx context.Context, tripID string) (int, error)
}

// SoldLedger answers whether a seat has already been permanently booked.
// The bookings module satisfies it.
type SoldLedger interface {
	IsSeatSold(ctx context.Context, tripID, seat string) (bool, error)
}

type Service interface {
	Acquire(ctx context.Context, tripID, seat, holder string) (*LockResponse, error)
	Release(ctx context.Context, tripID, seat, holder string) error
	HeldSeats(ctx context.Context, tripID string) ([]LockResponse, error)
	SweepTrip(ctx context.Context, tripID string) (int, error)
	SweepAll(ctx context.Context) (int, error)
	LockTTL() time.Duration
}

type service struct {
	repo    Repository
	trips   TripCatalog
	ledger  SoldLedger
	lockTTL time.Duration
	logger  *logger.Logger
}

func NewService(repo Repository, trips TripCatalog, ledger SoldLedger, lockTTL time.Duration) Service {
	return &service{
		repo:    repo,
		trips:   trips,
		ledger:  ledger,
		lockTTL: lockTTL,
		logger:  logger.GetDefault(),
	}
}

// Acquire validates the seat against the trip's layout and the booking
// ledger, then races for the lock. Exactly one concurrent caller wins;
// losers get *AlreadyLockedError with the winner's id.
func (s *service) Acquire(ctx context.Context, tripID, seat, holder string) (*LockResponse, error) {
	totalSeats, err := s.trips.SeatCount(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !seatmap.Contains(totalSeats, seat) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSeat, seat)
	}

	sold, err := s.ledger.IsSeatSold(ctx, tripID, seat)
	if err != nil {
		return nil, err
	}
	if sold {
		return nil, fmt.Errorf("%w: %s", ErrSeatSold, seat)
	}

	lock, err := s.repo.Acquire(ctx, tripID, seat, holder, s.lockTTL)
	if err != nil {
		if conflict, ok := err.(*AlreadyLockedError); ok {
			s.logger.LogSeatLockConflict(ctx, tripID, seat, conflict.Holder)
		}
		return nil, err
	}

	resp := toLockResponse(lock)
	return &resp, nil
}

// Release drops the caller's own lock. Releasing a free seat succeeds;
// releasing someone else's live lock fails with ErrNotHolder. The holder
// check and the delete are one atomic step in Redis, so an expire plus
// re-acquire by another user between them cannot lose the new lock.
func (s *service) Release(ctx context.Context, tripID, seat, holder string) error {
	return s.repo.ReleaseIfHolder(ctx, tripID, seat, holder)
}

func (s *service) HeldSeats(ctx context.Context, tripID string) ([]LockResponse, error) {
	held, err := s.repo.HeldSeats(ctx, tripID)
	if err != nil {
		return nil, err
	}

	responses := make([]LockResponse, 0, len(held))
	for _, lock := range held {
		responses = append(responses, toLockResponse(lock))
	}
	return responses, nil
}

func (s *service) SweepTrip(ctx context.Context, tripID string) (int, error) {
	start := time.Now()
	removed, err := s.repo.SweepTrip(ctx, tripID)
	if err != nil {
		return removed, err
	}
	s.logger.LogSweep(ctx, removed, time.Since(start))
	return removed, nil
}

func (s *service) SweepAll(ctx context.Context) (int, error) {
	start := time.Now()
	removed, err := s.repo.SweepAll(ctx)
	if err != nil {
		return removed, err
	}
	s.logger.LogSweep(ctx, removed, time.Since(start))
	return removed, nil
}

func (s *service) LockTTL() time.Duration {
	return s.lockTTL
}
