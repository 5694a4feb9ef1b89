package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, cfg *Config) *RateLimiter {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRateLimiter(client, cfg)
}

func TestIsAllowedWithinLimit(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 3,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d", i)
	}

	result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Zero(t, result.Remaining)
}

func TestExhaustedBudgetStaysBlocked(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 2,
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
		require.NoError(t, err)
		require.True(t, result.Allowed)
	}

	// Denied requests are not recorded, which must not reopen the budget
	for i := 0; i < 5; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
		require.NoError(t, err)
		assert.False(t, result.Allowed, "request %d after exhaustion", i)
		assert.Zero(t, result.Remaining)
	}
}

func TestIsAllowedPerClient(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 1,
	})
	ctx := context.Background()

	result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	// A different client has its own budget
	result, err = limiter.IsAllowed(ctx, "10.0.0.2", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestIsAllowedDisabled(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:         false,
		WindowDuration:  time.Minute,
		DefaultRequests: 1,
	})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestPerTypeLimits(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 1,
		BookingRequests: 2,
	})
	ctx := context.Background()

	result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeBooking)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Limit)

	result, err = limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Limit)
}
