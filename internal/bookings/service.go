package bookings

import (
	"context"
	"fmt"
	"time"

	"bustix/internal/locks"
	"bustix/internal/notifications"
	"bustix/internal/seatmap"
	"bustix/internal/shared/constants"
	"bustix/internal/trips"
	"bustix/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Service interface {
	CommitBooking(ctx context.Context, userID string, req CommitBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, bookingID, userID, userRole string) (*BookingResponse, error)
	ListUserBookings(ctx context.Context, userID string) ([]BookingResponse, error)
	VerifyPayment(ctx context.Context, bookingID string) (*BookingResponse, error)
}

type service struct {
	repo     Repository
	trips    trips.Service
	locks    locks.Repository
	redis    *redis.Client
	producer notifications.Producer
	logger   *logger.Logger
}

func NewService(repo Repository, tripService trips.Service, lockRepo locks.Repository, redisClient *redis.Client, producer notifications.Producer) Service {
	return &service{
		repo:     repo,
		trips:    tripService,
		locks:    lockRepo,
		redis:    redisClient,
		producer: producer,
		logger:   logger.GetDefault(),
	}
}

// CommitBooking turns a seat selection into a permanent booking. Seat
// locks are a selection-time convenience and are deliberately not a
// precondition here: a caller whose lock expired mid-checkout must
// still win if the seats are free, and the transaction in the
// repository is what makes a double sell impossible either way. After
// the commit succeeds the lock release, the reverse index and the
// event publish are all best effort.
func (s *service) CommitBooking(ctx context.Context, userID string, req CommitBookingRequest) (*BookingResponse, error) {
	trip, err := s.trips.Get(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	seats, err := validateSeats(trip, req.Seats)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &Booking{
		ID:            uuid.New(),
		UserID:        userID,
		TripID:        trip.ID,
		TotalSeats:    len(seats),
		TotalPrice:    trip.SeatPrice * float64(len(seats)),
		TransactionID: req.TransactionID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, label := range seats {
		booking.Seats = append(booking.Seats, BookingSeat{
			ID:        uuid.New(),
			BookingID: booking.ID,
			SeatLabel: label,
			Price:     trip.SeatPrice,
			CreatedAt: now,
		})
	}

	if err := s.repo.CommitBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.LogBookingCommitted(ctx, booking.ID.String(), req.TripID, userID, seats)
	s.afterCommit(ctx, booking, req.TripID, seats)

	resp := toBookingResponse(booking)
	return &resp, nil
}

// validateSeats enforces the commit preconditions: seat count within
// bounds, every label on the trip's layout, no duplicates. Whether the
// seats are still free is decided inside the commit transaction, never
// here.
func validateSeats(trip *trips.Trip, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return nil, ErrNoSeats
	}
	if len(requested) > MaxSeatsPerBooking {
		return nil, ErrTooManySeats
	}

	seen := make(map[string]bool, len(requested))
	seats := make([]string, 0, len(requested))
	for _, label := range requested {
		if seen[label] {
			continue
		}
		seen[label] = true

		if !seatmap.Contains(trip.TotalSeats, label) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSeat, label)
		}

		seats = append(seats, label)
	}

	return seats, nil
}

// afterCommit runs the post-commit side effects. None of them can fail
// the booking; each failure is logged and abandoned.
func (s *service) afterCommit(ctx context.Context, booking *Booking, tripID string, seats []string) {
	for _, label := range seats {
		if err := s.locks.Release(ctx, tripID, label); err != nil {
			s.logger.WithError(err).Warn("Failed to release lock after commit",
				"trip_id", tripID, "seat", label)
		}
	}

	key := constants.BuildUserBookingsKey(booking.UserID)
	if err := s.redis.RPush(ctx, key, booking.ID.String()).Err(); err != nil {
		s.logger.WithError(err).Warn("Failed to update user bookings index",
			"user_id", booking.UserID)
	}

	event := &notifications.TicketEvent{
		Type:          notifications.EventTicketConfirmed,
		BookingID:     booking.ID.String(),
		TripID:        tripID,
		UserID:        booking.UserID,
		Seats:         seats,
		TotalPrice:    booking.TotalPrice,
		TransactionID: booking.TransactionID,
		OccurredAt:    time.Now(),
	}
	if err := s.producer.PublishTicketEvent(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish ticket event",
			"booking_id", booking.ID.String())
	}
}

// GetBooking returns one booking. Users only see their own; admins see
// everything.
func (s *service) GetBooking(ctx context.Context, bookingID, userID, userRole string) (*BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id %q", ErrNotFound, bookingID)
	}

	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID && userRole != "ADMIN" {
		return nil, ErrNotFound
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}

// ListUserBookings serves from the Redis reverse index when it agrees
// with the database, and falls back to the database, rebuilding the
// index, when it does not. The database is always the source of truth.
func (s *service) ListUserBookings(ctx context.Context, userID string) ([]BookingResponse, error) {
	key := constants.BuildUserBookingsKey(userID)

	count, err := s.repo.CountUserBookings(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids, err := s.redis.LRange(ctx, key, 0, -1).Result()
	if err == nil && int64(len(ids)) == count && count > 0 {
		if bookings, err := s.bookingsFromIndex(ctx, ids); err == nil {
			return bookings, nil
		}
	}

	bookings, err := s.repo.GetUserBookings(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.rebuildIndex(ctx, key, bookings)

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, toBookingResponse(&bookings[i]))
	}
	return responses, nil
}

func (s *service) bookingsFromIndex(ctx context.Context, rawIDs []string) ([]BookingResponse, error) {
	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt index entry %q", raw)
		}
		ids = append(ids, id)
	}

	bookings, err := s.repo.GetBookingsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(bookings) != len(ids) {
		return nil, fmt.Errorf("index out of sync")
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, toBookingResponse(&bookings[i]))
	}
	return responses, nil
}

// rebuildIndex rewrites the reverse index from database state, oldest
// first so RPush on new commits keeps appending in order.
func (s *service) rebuildIndex(ctx context.Context, key string, bookings []Booking) {
	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, key)
	for i := len(bookings) - 1; i >= 0; i-- {
		pipe.RPush(ctx, key, bookings[i].ID.String())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to rebuild user bookings index", "key", key)
	}
}

// VerifyPayment flips the admin verification flag. Idempotent.
func (s *service) VerifyPayment(ctx context.Context, bookingID string) (*BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id %q", ErrNotFound, bookingID)
	}

	booking, err := s.repo.MarkPaymentVerified(ctx, id)
	if err != nil {
		return nil, err
	}

	event := &notifications.TicketEvent{
		Type:       notifications.EventPaymentVerified,
		BookingID:  booking.ID.String(),
		TripID:     booking.TripID.String(),
		UserID:     booking.UserID,
		OccurredAt: time.Now(),
	}
	if err := s.producer.PublishTicketEvent(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish payment verified event",
			"booking_id", booking.ID.String())
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}
