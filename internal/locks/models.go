package locks

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Lock is one time-bounded, exclusive claim on a seat. At most one lock
// record exists per (trip, seat); Redis key layout enforces that, the Lua
// compare-and-set in redis_atomic.go enforces single-winner acquisition.
type Lock struct {
	TripID    string        `json:"trip_id"`
	Seat      string        `json:"seat"`
	Holder    string        `json:"holder"`
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"ttl"`
}

// ExpiresAt returns the instant the lock stops counting as held.
func (l *Lock) ExpiresAt() time.Time {
	return l.CreatedAt.Add(l.TTL)
}

// ExpiredAt reports whether the lock is logically expired at now. A record
// that is still physically present but expired is held by nobody; every
// read path applies this same test.
func (l *Lock) ExpiredAt(now time.Time) bool {
	return !now.Before(l.ExpiresAt())
}

// The stored value format is holder|createdAtMs|ttlMs. It has to stay
// parseable from Lua (string.match in the acquire script), so keep it a
// flat delimited string rather than JSON.

func formatLockValue(holder string, createdAt time.Time, ttl time.Duration) string {
	return fmt.Sprintf("%s|%d|%d", holder, createdAt.UnixMilli(), ttl.Milliseconds())
}

func parseLockValue(tripID, seat, value string) (*Lock, error) {
	parts := strings.Split(value, "|")
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed lock value %q", value)
	}

	createdMs, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed lock created-at in %q: %w", value, err)
	}
	ttlMs, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed lock ttl in %q: %w", value, err)
	}

	return &Lock{
		TripID:    tripID,
		Seat:      seat,
		Holder:    parts[0],
		CreatedAt: time.UnixMilli(createdMs),
		TTL:       time.Duration(ttlMs) * time.Millisecond,
	}, nil
}
