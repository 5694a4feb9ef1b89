package trips

import (
	"context"
	"testing"
	"time"

	"bustix/internal/seatmap"
	"bustix/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Trip{}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewService(NewRepository(db), cache.NewService(client), time.Minute)
}

func validRequest() CreateTripRequest {
	return CreateTripRequest{
		Name:          "Night Express",
		From:          "Mumbai",
		To:            "Pune",
		Date:          "2026-09-15",
		DepartureTime: "22:30",
		ACType:        "AC",
		TotalSeats:    40,
		SeatPrice:     450,
	}
}

func TestCreateTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	trip, err := svc.CreateTrip(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, 40, trip.TotalSeats)
	assert.Len(t, trip.SeatLabels, 40)
	assert.Equal(t, "A1", trip.SeatLabels[0])
	assert.Equal(t, "J4", trip.SeatLabels[39])

	got, err := svc.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)
	assert.Equal(t, "Mumbai", got.From)
}

func TestCreateTripRejectsPartialRows(t *testing.T) {
	svc := newTestService(t)

	req := validRequest()
	req.TotalSeats = 42
	_, err := svc.CreateTrip(context.Background(), req)
	assert.ErrorIs(t, err, seatmap.ErrInvalidSeatCount)
}

func TestGetTripNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetTrip(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetTrip(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTripsFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTrip(ctx, validRequest())
	require.NoError(t, err)

	other := validRequest()
	other.From = "Delhi"
	other.To = "Jaipur"
	_, err = svc.CreateTrip(ctx, other)
	require.NoError(t, err)

	all, err := svc.ListTrips(ctx, TripListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListTrips(ctx, TripListQuery{From: "Mumbai", To: "Pune"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Mumbai", filtered[0].From)
}

func TestSeatCount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	trip, err := svc.CreateTrip(ctx, validRequest())
	require.NoError(t, err)

	count, err := svc.SeatCount(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, count)
}
