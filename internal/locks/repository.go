package locks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bustix/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// Repository is the seat-lock store. All read paths apply the logical
// expiry test, so callers never observe an expired lock as held even
// when its record is still physically present.
type Repository interface {
	Acquire(ctx context.Context, tripID, seat, holder string, ttl time.Duration) (*Lock, error)
	Release(ctx context.Context, tripID, seat string) error
	ReleaseIfHolder(ctx context.Context, tripID, seat, holder string) error
	Get(ctx context.Context, tripID, seat string) (*Lock, error)
	HeldSeats(ctx context.Context, tripID string) (map[string]*Lock, error)
	SweepTrip(ctx context.Context, tripID string) (int, error)
	SweepAll(ctx context.Context) (int, error)
}

type redisRepository struct {
	redis  *redis.Client
	atomic *AtomicLockOps
}

func NewRepository(redisClient *redis.Client, atomic *AtomicLockOps) Repository {
	return &redisRepository{
		redis:  redisClient,
		atomic: atomic,
	}
}

// Acquire takes the lock for one seat, or fails with *AlreadyLockedError
// naming the current holder. A logically expired record counts as free
// and is overwritten in the same atomic step.
func (r *redisRepository) Acquire(ctx context.Context, tripID, seat, holder string, ttl time.Duration) (*Lock, error) {
	now := time.Now()

	acquired, currentHolder, err := r.atomic.AtomicAcquire(ctx, tripID, seat, holder, now, ttl)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, &AlreadyLockedError{TripID: tripID, Seat: seat, Holder: currentHolder}
	}

	return &Lock{
		TripID:    tripID,
		Seat:      seat,
		Holder:    holder,
		CreatedAt: now,
		TTL:       ttl,
	}, nil
}

// Release removes the lock record unconditionally. Releasing a seat that
// is not locked is a no-op, not an error.
func (r *redisRepository) Release(ctx context.Context, tripID, seat string) error {
	if err := r.redis.Del(ctx, constants.BuildSeatLockKey(tripID, seat)).Err(); err != nil {
		return fmt.Errorf("failed to release lock for seat %s: %w", seat, err)
	}
	return nil
}

// ReleaseIfHolder removes the lock only if holder still owns it live,
// in one atomic step. Releasing a free or expired seat is a no-op;
// someone else's live lock fails with ErrNotHolder.
func (r *redisRepository) ReleaseIfHolder(ctx context.Context, tripID, seat, holder string) error {
	status, err := r.atomic.AtomicReleaseIfHolder(ctx, tripID, seat, holder, time.Now())
	if err != nil {
		return err
	}
	if status == -1 {
		return fmt.Errorf("%w: seat %s", ErrNotHolder, seat)
	}
	return nil
}

// Get returns the live lock on one seat, or nil when the seat is free.
func (r *redisRepository) Get(ctx context.Context, tripID, seat string) (*Lock, error) {
	value, err := r.redis.Get(ctx, constants.BuildSeatLockKey(tripID, seat)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read lock for seat %s: %w", seat, err)
	}

	lock, err := parseLockValue(tripID, seat, value)
	if err != nil {
		return nil, err
	}
	if lock.ExpiredAt(time.Now()) {
		return nil, nil
	}
	return lock, nil
}

// HeldSeats returns every live lock on a trip keyed by seat label.
func (r *redisRepository) HeldSeats(ctx context.Context, tripID string) (map[string]*Lock, error) {
	now := time.Now()
	held := make(map[string]*Lock)

	iter := r.redis.Scan(ctx, 0, constants.BuildTripLocksPattern(tripID), 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		seat, ok := seatFromLockKey(key)
		if !ok {
			continue
		}

		value, err := r.redis.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read lock %s: %w", key, err)
		}

		lock, err := parseLockValue(tripID, seat, value)
		if err != nil || lock.ExpiredAt(now) {
			continue
		}
		held[seat] = lock
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan locks for trip %s: %w", tripID, err)
	}

	return held, nil
}

// SweepTrip removes every expired lock record on one trip.
func (r *redisRepository) SweepTrip(ctx context.Context, tripID string) (int, error) {
	return r.sweepPattern(ctx, constants.BuildTripLocksPattern(tripID))
}

// SweepAll removes every expired lock record in the store.
func (r *redisRepository) SweepAll(ctx context.Context) (int, error) {
	return r.sweepPattern(ctx, constants.PatternAllLocks)
}

func (r *redisRepository) sweepPattern(ctx context.Context, pattern string) (int, error) {
	now := time.Now()
	removed := 0

	iter := r.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		// Re-check expiry inside the delete so a freshly re-acquired
		// lock survives the sweep.
		ok, err := r.atomic.AtomicDeleteIfExpired(ctx, iter.Val(), now)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan locks for sweep: %w", err)
	}

	return removed, nil
}

// seatFromLockKey extracts the seat label from a lock key of the form
// bustix:lock:{trip-id}:{seat}.
func seatFromLockKey(key string) (string, bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 4 {
		return "", false
	}
	return parts[3], true
}
