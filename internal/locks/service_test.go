package locks

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	seats int
	err   error
}

func (s stubCatalog) SeatCount(ctx context.Context, tripID string) (int, error) {
	return s.seats, s.err
}

type stubLedger struct {
	sold map[string]bool
}

func (s stubLedger) IsSeatSold(ctx context.Context, tripID, seat string) (bool, error) {
	return s.sold[seat], nil
}

func newTestService(t *testing.T, seats int, sold map[string]bool) Service {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := NewRepository(client, NewAtomicLockOps(client))
	return NewService(repo, stubCatalog{seats: seats}, stubLedger{sold: sold}, time.Minute)
}

func TestServiceAcquire(t *testing.T) {
	svc := newTestService(t, 40, nil)
	ctx := context.Background()

	lock, err := svc.Acquire(ctx, "trip-1", "A1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", lock.Holder)
	assert.True(t, lock.ExpiresAt.After(time.Now()))
}

func TestServiceAcquireUnknownSeat(t *testing.T) {
	svc := newTestService(t, 40, nil)

	// K1 would be seat 41 on a 40-seat bus
	_, err := svc.Acquire(context.Background(), "trip-1", "K1", "user-1")
	assert.ErrorIs(t, err, ErrUnknownSeat)
}

func TestServiceAcquireSoldSeat(t *testing.T) {
	svc := newTestService(t, 40, map[string]bool{"B2": true})

	_, err := svc.Acquire(context.Background(), "trip-1", "B2", "user-1")
	assert.ErrorIs(t, err, ErrSeatSold)
}

func TestServiceAcquireConflict(t *testing.T) {
	svc := newTestService(t, 40, nil)
	ctx := context.Background()

	_, err := svc.Acquire(ctx, "trip-1", "A1", "user-1")
	require.NoError(t, err)

	_, err = svc.Acquire(ctx, "trip-1", "A1", "user-2")
	assert.ErrorIs(t, err, ErrAlreadyLocked)
}

func TestServiceReleaseOwnership(t *testing.T) {
	svc := newTestService(t, 40, nil)
	ctx := context.Background()

	_, err := svc.Acquire(ctx, "trip-1", "A1", "user-1")
	require.NoError(t, err)

	// Someone else cannot release it
	err = svc.Release(ctx, "trip-1", "A1", "user-2")
	assert.ErrorIs(t, err, ErrNotHolder)

	// The holder can, and a second release is a no-op
	require.NoError(t, svc.Release(ctx, "trip-1", "A1", "user-1"))
	require.NoError(t, svc.Release(ctx, "trip-1", "A1", "user-1"))

	held, err := svc.HeldSeats(ctx, "trip-1")
	require.NoError(t, err)
	assert.Empty(t, held)
}
