package trips

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateTrip(ctx context.Context, trip *Trip) error
	GetTripByID(ctx context.Context, id uuid.UUID) (*Trip, error)
	ListTrips(ctx context.Context, query TripListQuery) ([]Trip, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTrip(ctx context.Context, trip *Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *repository) GetTripByID(ctx context.Context, id uuid.UUID) (*Trip, error) {
	var trip Trip
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *repository) ListTrips(ctx context.Context, query TripListQuery) ([]Trip, error) {
	var trips []Trip

	baseQuery := r.db.WithContext(ctx).Model(&Trip{})
	if query.From != "" {
		baseQuery = baseQuery.Where("from_city = ?", query.From)
	}
	if query.To != "" {
		baseQuery = baseQuery.Where("to_city = ?", query.To)
	}
	if query.Date != "" {
		baseQuery = baseQuery.Where("travel_date = ?", query.Date)
	}

	err := baseQuery.
		Order("travel_date ASC, departure_time ASC").
		Find(&trips).Error

	return trips, err
}
