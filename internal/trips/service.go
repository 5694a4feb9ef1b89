package trips

import (
	"context"
	"fmt"
	"time"

	"bustix/internal/seatmap"
	"bustix/internal/shared/constants"
	"bustix/pkg/cache"
	"bustix/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	CreateTrip(ctx context.Context, req CreateTripRequest) (*TripResponse, error)
	GetTrip(ctx context.Context, tripID string) (*TripResponse, error)
	ListTrips(ctx context.Context, query TripListQuery) ([]TripResponse, error)

	// Get returns the raw trip row for internal consumers.
	Get(ctx context.Context, tripID string) (*Trip, error)

	// SeatCount answers layout lookups without exposing the whole row.
	SeatCount(ctx context.Context, tripID string) (int, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
	logger   *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		logger:   logger.GetDefault(),
	}
}

// CreateTrip schedules a trip. A seat count that does not form whole
// rows is rejected here and nowhere else; rows that exist are trusted.
func (s *service) CreateTrip(ctx context.Context, req CreateTripRequest) (*TripResponse, error) {
	if err := seatmap.Validate(req.TotalSeats); err != nil {
		return nil, err
	}

	trip := &Trip{
		ID:            uuid.New(),
		Name:          req.Name,
		FromCity:      req.From,
		ToCity:        req.To,
		TravelDate:    req.Date,
		DepartureTime: req.DepartureTime,
		ACType:        req.ACType,
		TotalSeats:    req.TotalSeats,
		SeatPrice:     req.SeatPrice,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.repo.CreateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	s.invalidateListCache(ctx)

	labels, _ := seatmap.LabelsFor(trip.TotalSeats)
	resp := toTripResponse(trip, labels)
	return &resp, nil
}

func (s *service) GetTrip(ctx context.Context, tripID string) (*TripResponse, error) {
	trip, err := s.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}

	labels, err := seatmap.LabelsFor(trip.TotalSeats)
	if err != nil {
		return nil, err
	}

	resp := toTripResponse(trip, labels)
	return &resp, nil
}

func (s *service) ListTrips(ctx context.Context, query TripListQuery) ([]TripResponse, error) {
	cacheKey := constants.BuildTripListKey(query.From, query.To, query.Date)

	var responses []TripResponse
	err := s.cache.GetOrSet(ctx, cacheKey, s.cacheTTL, func() (interface{}, error) {
		trips, err := s.repo.ListTrips(ctx, query)
		if err != nil {
			return nil, err
		}

		list := make([]TripResponse, 0, len(trips))
		for i := range trips {
			list = append(list, toTripResponse(&trips[i], nil))
		}
		return list, nil
	}, &responses)
	if err != nil {
		return nil, err
	}

	return responses, nil
}

func (s *service) Get(ctx context.Context, tripID string) (*Trip, error) {
	id, err := uuid.Parse(tripID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid trip id %q", ErrNotFound, tripID)
	}

	var trip Trip
	cacheKey := constants.BuildTripDetailKey(tripID)
	err = s.cache.GetOrSet(ctx, cacheKey, s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetTripByID(ctx, id)
	}, &trip)
	if err != nil {
		return nil, err
	}

	return &trip, nil
}

func (s *service) SeatCount(ctx context.Context, tripID string) (int, error) {
	trip, err := s.Get(ctx, tripID)
	if err != nil {
		return 0, err
	}
	return trip.TotalSeats, nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.CacheKeyTripList+"*"); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate trip list cache")
	}
}
