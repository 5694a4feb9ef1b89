package locks

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRepository(client, NewAtomicLockOps(client))
}

func TestAcquireAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	lock, err := repo.Acquire(ctx, "trip-1", "A1", "user-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "user-1", lock.Holder)
	assert.Equal(t, "A1", lock.Seat)

	got, err := repo.Get(ctx, "trip-1", "A1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.Holder)
}

func TestAcquireConflict(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Acquire(ctx, "trip-1", "A1", "user-1", time.Minute)
	require.NoError(t, err)

	_, err = repo.Acquire(ctx, "trip-1", "A1", "user-2", time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyLocked)

	var conflict *AlreadyLockedError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "user-1", conflict.Holder)
	assert.Equal(t, "A1", conflict.Seat)
}

func TestAcquireSingleWinnerUnderContention(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	const contenders = 32
	var wg sync.WaitGroup
	winners := make(chan string, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			holder := fmt.Sprintf("user-%d", n)
			if _, err := repo.Acquire(ctx, "trip-1", "C3", holder, time.Minute); err == nil {
				winners <- holder
			}
		}(i)
	}
	wg.Wait()
	close(winners)

	count := 0
	for range winners {
		count++
	}
	assert.Equal(t, 1, count, "exactly one contender should win the lock")
}

func TestAcquireAfterExpiry(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Acquire(ctx, "trip-1", "A1", "user-1", 30*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	// Expired lock reads as free
	got, err := repo.Get(ctx, "trip-1", "A1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// And can be taken over without a sweep running
	lock, err := repo.Acquire(ctx, "trip-1", "A1", "user-2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "user-2", lock.Holder)
}

func TestReleaseIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Acquire(ctx, "trip-1", "A1", "user-1", time.Minute)
	require.NoError(t, err)

	require.NoError(t, repo.Release(ctx, "trip-1", "A1"))
	require.NoError(t, repo.Release(ctx, "trip-1", "A1"))

	got, err := repo.Get(ctx, "trip-1", "A1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReleaseIfHolder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Acquire(ctx, "trip-1", "A1", "user-1", time.Minute)
	require.NoError(t, err)

	// Someone else cannot release a live lock, and it stays held
	err = repo.ReleaseIfHolder(ctx, "trip-1", "A1", "user-2")
	assert.ErrorIs(t, err, ErrNotHolder)

	got, err := repo.Get(ctx, "trip-1", "A1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.Holder)

	// The holder can, and releasing the now-free seat is a no-op
	require.NoError(t, repo.ReleaseIfHolder(ctx, "trip-1", "A1", "user-1"))
	require.NoError(t, repo.ReleaseIfHolder(ctx, "trip-1", "A1", "user-1"))
}

func TestReleaseIfHolderAfterExpiryTakeover(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Acquire(ctx, "trip-1", "A1", "user-1", 30*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	// The seat expired and someone else took it; the first holder's
	// late release must not remove the new lock
	_, err = repo.Acquire(ctx, "trip-1", "A1", "user-2", time.Minute)
	require.NoError(t, err)

	err = repo.ReleaseIfHolder(ctx, "trip-1", "A1", "user-1")
	assert.ErrorIs(t, err, ErrNotHolder)

	got, err := repo.Get(ctx, "trip-1", "A1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-2", got.Holder)
}

func TestHeldSeatsFiltersExpired(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Acquire(ctx, "trip-1", "A1", "user-1", time.Minute)
	require.NoError(t, err)
	_, err = repo.Acquire(ctx, "trip-1", "A2", "user-2", 30*time.Millisecond)
	require.NoError(t, err)
	_, err = repo.Acquire(ctx, "trip-2", "A1", "user-3", time.Minute)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	held, err := repo.HeldSeats(ctx, "trip-1")
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, "user-1", held["A1"].Holder)
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Acquire(ctx, "trip-1", "A1", "user-1", time.Minute)
	require.NoError(t, err)
	_, err = repo.Acquire(ctx, "trip-1", "A2", "user-2", 30*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	removed, err := repo.SweepTrip(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// Live lock survived
	got, err := repo.Get(ctx, "trip-1", "A1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.Holder)

	// Sweeping again finds nothing
	removed, err = repo.SweepTrip(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestSweepAllSpansTrips(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Acquire(ctx, "trip-1", "A1", "user-1", 30*time.Millisecond)
	require.NoError(t, err)
	_, err = repo.Acquire(ctx, "trip-2", "B2", "user-2", 30*time.Millisecond)
	require.NoError(t, err)
	_, err = repo.Acquire(ctx, "trip-3", "C3", "user-3", time.Minute)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	removed, err := repo.SweepAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
}
