package locks

import (
	"context"
	"fmt"
	"time"

	"bustix/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// AtomicLockOps handles atomic Redis operations for seat locking
type AtomicLockOps struct {
	redis *redis.Client
}

// NewAtomicLockOps creates a new atomic lock operations handler
func NewAtomicLockOps(redisClient *redis.Client) *AtomicLockOps {
	return &AtomicLockOps{
		redis: redisClient,
	}
}

// Lua script for atomic lock acquisition - prevents check-then-set races.
// Expiry is decided by the logical timestamps in the value, not by Redis
// key expiry; the PX on SET is only a backstop so abandoned records do
// not accumulate forever. It is set to twice the logical TTL so expired
// records stay observable to sweeps for a while.
const luaAcquireLock = `
-- KEYS[1] = lock key
-- ARGV[1] = holder
-- ARGV[2] = now (unix ms)
-- ARGV[3] = ttl (ms)

local existing = redis.call("GET", KEYS[1])
if existing then
    local holder, created, ttl = string.match(existing, "^(.-)|(%d+)|(%d+)$")
    if holder and tonumber(ARGV[2]) < tonumber(created) + tonumber(ttl) then
        -- Live lock, acquisition fails with the current holder
        return {0, holder}
    end
end

local value = ARGV[1] .. "|" .. ARGV[2] .. "|" .. ARGV[3]
redis.call("SET", KEYS[1], value, "PX", tonumber(ARGV[3]) * 2)
return {1, "acquired"}
`

// Lua script for sweep - deletes the record only if it is still expired
// at the given instant, so a seat re-locked between SCAN and delete is
// never lost.
const luaDeleteIfExpired = `
-- KEYS[1] = lock key
-- ARGV[1] = now (unix ms)

local existing = redis.call("GET", KEYS[1])
if not existing then
    return 0
end

local holder, created, ttl = string.match(existing, "^(.-)|(%d+)|(%d+)$")
if not holder or tonumber(ARGV[1]) >= tonumber(created) + tonumber(ttl) then
    redis.call("DEL", KEYS[1])
    return 1
end
return 0
`

// Lua script for holder-checked release. The holder test and the delete
// run as one step, so a lock that expires and is re-acquired between a
// caller's read and its delete can never be removed by the stale caller.
const luaReleaseIfHolder = `
-- KEYS[1] = lock key
-- ARGV[1] = holder
-- ARGV[2] = now (unix ms)

local existing = redis.call("GET", KEYS[1])
if not existing then
    return 0
end

local holder, created, ttl = string.match(existing, "^(.-)|(%d+)|(%d+)$")
if not holder or tonumber(ARGV[2]) >= tonumber(created) + tonumber(ttl) then
    -- Expired record counts as free; removing it is housekeeping
    redis.call("DEL", KEYS[1])
    return 0
end

if holder ~= ARGV[1] then
    return -1
end

redis.call("DEL", KEYS[1])
return 1
`

// AtomicAcquire attempts to take the lock for one seat. On conflict it
// returns the current holder and acquired=false with a nil error.
func (a *AtomicLockOps) AtomicAcquire(ctx context.Context, tripID, seat, holder string, now time.Time, ttl time.Duration) (bool, string, error) {
	if a.redis == nil {
		return false, "", fmt.Errorf("redis client not available")
	}

	keys := []string{constants.BuildSeatLockKey(tripID, seat)}
	args := []interface{}{
		holder,
		now.UnixMilli(),
		ttl.Milliseconds(),
	}

	result, err := a.redis.EvalSha(ctx, luaAcquireLock, keys, args...).Result()
	if err != nil {
		// If script is not loaded, try to load and execute
		result, err = a.redis.Eval(ctx, luaAcquireLock, keys, args...).Result()
		if err != nil {
			return false, "", fmt.Errorf("failed to execute atomic lock acquire: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return false, "", fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return false, "", fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		currentHolder, _ := resultArray[1].(string)
		return false, currentHolder, nil
	}

	return true, holder, nil
}

// AtomicReleaseIfHolder removes the lock only while holder still owns it
// live. Returns 1 when the live lock was deleted, 0 when the seat was
// already free or expired, -1 when someone else holds it.
func (a *AtomicLockOps) AtomicReleaseIfHolder(ctx context.Context, tripID, seat, holder string, now time.Time) (int64, error) {
	if a.redis == nil {
		return 0, fmt.Errorf("redis client not available")
	}

	keys := []string{constants.BuildSeatLockKey(tripID, seat)}
	args := []interface{}{holder, now.UnixMilli()}

	result, err := a.redis.EvalSha(ctx, luaReleaseIfHolder, keys, args...).Result()
	if err != nil {
		result, err = a.redis.Eval(ctx, luaReleaseIfHolder, keys, args...).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to execute atomic lock release: %w", err)
		}
	}

	status, ok := result.(int64)
	if !ok {
		return 0, fmt.Errorf("invalid result from Lua script")
	}

	return status, nil
}

// AtomicDeleteIfExpired removes one lock record only if it is logically
// expired at now. Returns whether a record was removed.
func (a *AtomicLockOps) AtomicDeleteIfExpired(ctx context.Context, key string, now time.Time) (bool, error) {
	if a.redis == nil {
		return false, fmt.Errorf("redis client not available")
	}

	result, err := a.redis.EvalSha(ctx, luaDeleteIfExpired, []string{key}, now.UnixMilli()).Result()
	if err != nil {
		result, err = a.redis.Eval(ctx, luaDeleteIfExpired, []string{key}, now.UnixMilli()).Result()
		if err != nil {
			return false, fmt.Errorf("failed to execute expired lock delete: %w", err)
		}
	}

	removed, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("invalid result from Lua script")
	}

	return removed == 1, nil
}

// PreloadScripts loads Lua scripts into Redis for better performance
func (a *AtomicLockOps) PreloadScripts(ctx context.Context) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := a.redis.ScriptLoad(ctx, luaAcquireLock).Result(); err != nil {
		return fmt.Errorf("failed to load lock acquire script: %w", err)
	}

	if _, err := a.redis.ScriptLoad(ctx, luaReleaseIfHolder).Result(); err != nil {
		return fmt.Errorf("failed to load lock release script: %w", err)
	}

	if _, err := a.redis.ScriptLoad(ctx, luaDeleteIfExpired).Result(); err != nil {
		return fmt.Errorf("failed to load expired lock delete script: %w", err)
	}

	return nil
}
