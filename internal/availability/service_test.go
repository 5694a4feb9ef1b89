package availability

import (
	"context"
	"testing"
	"time"

	"bustix/internal/bookings"
	"bustix/internal/locks"
	"bustix/internal/trips"
	"bustix/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	service  Service
	lockRepo locks.Repository
	ledger   bookings.Repository
	db       *gorm.DB
	trip     *trips.Trip
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&trips.Trip{}, &bookings.Booking{}, &bookings.BookingSeat{}, &bookings.TripSeat{}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	trip := &trips.Trip{
		ID:            uuid.New(),
		Name:          "Night Express",
		FromCity:      "Mumbai",
		ToCity:        "Pune",
		TravelDate:    "2026-09-15",
		DepartureTime: "22:30",
		ACType:        "AC",
		TotalSeats:    8,
		SeatPrice:     450,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, db.Create(trip).Error)

	tripSvc := trips.NewService(trips.NewRepository(db), cache.NewService(client), time.Minute)
	lockRepo := locks.NewRepository(client, locks.NewAtomicLockOps(client))
	ledger := bookings.NewRepository(db)

	return &testEnv{
		service:  NewService(tripSvc, lockRepo, ledger),
		lockRepo: lockRepo,
		ledger:   ledger,
		db:       db,
		trip:     trip,
	}
}

func (e *testEnv) sellSeats(t *testing.T, userID, txnID string, seats ...string) {
	t.Helper()

	now := time.Now()
	booking := &bookings.Booking{
		ID:            uuid.New(),
		UserID:        userID,
		TripID:        e.trip.ID,
		TotalSeats:    len(seats),
		TotalPrice:    e.trip.SeatPrice * float64(len(seats)),
		TransactionID: txnID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, label := range seats {
		booking.Seats = append(booking.Seats, bookings.BookingSeat{
			ID:        uuid.New(),
			BookingID: booking.ID,
			SeatLabel: label,
			Price:     e.trip.SeatPrice,
			CreatedAt: now,
		})
	}
	require.NoError(t, e.ledger.CommitBooking(context.Background(), booking))
}

func seatByLabel(t *testing.T, snapshot *SnapshotResponse, label string) SeatView {
	t.Helper()
	for _, seat := range snapshot.Seats {
		if seat.Seat == label {
			return seat
		}
	}
	t.Fatalf("seat %s not in snapshot", label)
	return SeatView{}
}

func TestSnapshotClassification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.sellSeats(t, "user-9", "txn-0001", "A1")

	_, err := env.lockRepo.Acquire(ctx, env.trip.ID.String(), "A2", "viewer", time.Minute)
	require.NoError(t, err)
	_, err = env.lockRepo.Acquire(ctx, env.trip.ID.String(), "A3", "someone-else", time.Minute)
	require.NoError(t, err)

	snapshot, err := env.service.Snapshot(ctx, env.trip.ID.String(), "viewer")
	require.NoError(t, err)

	assert.Equal(t, 8, snapshot.TotalSeats)
	assert.Len(t, snapshot.Seats, 8)
	assert.Equal(t, 5, snapshot.Available)

	assert.Equal(t, StatusBooked, seatByLabel(t, snapshot, "A1").Status)
	assert.Equal(t, StatusLockedByMe, seatByLabel(t, snapshot, "A2").Status)
	assert.Equal(t, StatusLockedByOther, seatByLabel(t, snapshot, "A3").Status)
	assert.Equal(t, StatusAvailable, seatByLabel(t, snapshot, "B4").Status)

	locked := seatByLabel(t, snapshot, "A2")
	require.NotNil(t, locked.LockExpiresAt)
	assert.True(t, locked.LockExpiresAt.After(time.Now()))
}

func TestSnapshotAnonymousViewerSeesLockedByOther(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.lockRepo.Acquire(ctx, env.trip.ID.String(), "A2", "viewer", time.Minute)
	require.NoError(t, err)

	snapshot, err := env.service.Snapshot(ctx, env.trip.ID.String(), "")
	require.NoError(t, err)
	assert.Equal(t, StatusLockedByOther, seatByLabel(t, snapshot, "A2").Status)
}

func TestSnapshotSoldWinsOverLock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.lockRepo.Acquire(ctx, env.trip.ID.String(), "A1", "viewer", time.Minute)
	require.NoError(t, err)
	env.sellSeats(t, "viewer", "txn-0001", "A1")

	snapshot, err := env.service.Snapshot(ctx, env.trip.ID.String(), "viewer")
	require.NoError(t, err)
	assert.Equal(t, StatusBooked, seatByLabel(t, snapshot, "A1").Status)
}

func TestSnapshotReflectsLockExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.lockRepo.Acquire(ctx, env.trip.ID.String(), "A2", "viewer", 30*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	snapshot, err := env.service.Snapshot(ctx, env.trip.ID.String(), "viewer")
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, seatByLabel(t, snapshot, "A2").Status)
	assert.Equal(t, 8, snapshot.Available)

	_, err = env.service.Snapshot(ctx, env.trip.ID.String(), "viewer")
	require.NoError(t, err)
}

func TestSnapshotUnknownTrip(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Snapshot(context.Background(), uuid.NewString(), "viewer")
	assert.ErrorIs(t, err, trips.ErrNotFound)
}
