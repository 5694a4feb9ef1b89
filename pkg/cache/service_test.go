package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) Service {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewService(client)
}

func TestSetAndGet(t *testing.T) {
	svc := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k1", payload{Name: "a", Count: 2}, time.Minute))

	var got payload
	require.NoError(t, svc.Get(ctx, "k1", &got))
	assert.Equal(t, payload{Name: "a", Count: 2}, got)
}

func TestGetMiss(t *testing.T) {
	svc := newTestCache(t)

	var got payload
	err := svc.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGetOrSetFetchesOnMiss(t *testing.T) {
	svc := newTestCache(t)
	ctx := context.Background()

	calls := 0
	fetcher := func() (interface{}, error) {
		calls++
		return payload{Name: "fetched", Count: calls}, nil
	}

	var got payload
	require.NoError(t, svc.GetOrSet(ctx, "k1", time.Minute, fetcher, &got))
	assert.Equal(t, "fetched", got.Name)
	assert.Equal(t, 1, calls)
}

func TestDeletePattern(t *testing.T) {
	svc := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "app:list:a", payload{}, time.Minute))
	require.NoError(t, svc.Set(ctx, "app:list:b", payload{}, time.Minute))
	require.NoError(t, svc.Set(ctx, "app:detail:c", payload{}, time.Minute))

	require.NoError(t, svc.DeletePattern(ctx, "app:list:*"))

	assert.False(t, svc.Exists(ctx, "app:list:a"))
	assert.False(t, svc.Exists(ctx, "app:list:b"))
	assert.True(t, svc.Exists(ctx, "app:detail:c"))
}
