package constants

import "fmt"

// Redis key layout for the application.
// Pattern: bustix:{module}:{identifier}:{params?}

const KeyPrefix = "bustix"

// ================== SEAT LOCKS ==================

const (
	// One key per (trip, seat). Value format: holder|createdAtMs|ttlMs.
	keySeatLock = KeyPrefix + ":lock:%s:%s" // trip-id, seat-label

	// SCAN pattern for every lock on one trip.
	patternTripLocks = KeyPrefix + ":lock:%s:*"

	// SCAN pattern for every lock in the store (global sweeper).
	PatternAllLocks = KeyPrefix + ":lock:*"
)

// BuildSeatLockKey returns the lock key for one seat on one trip.
func BuildSeatLockKey(tripID, seatLabel string) string {
	return fmt.Sprintf(keySeatLock, tripID, seatLabel)
}

// BuildTripLocksPattern returns the SCAN pattern matching all lock keys of a trip.
func BuildTripLocksPattern(tripID string) string {
	return fmt.Sprintf(patternTripLocks, tripID)
}

// ================== BOOKING LEDGER ==================

const (
	// Redis list of booking ids per user, newest last. The bookings table
	// is the source of truth; this index is a fast path only.
	keyUserBookings = KeyPrefix + ":user_bookings:%s" // user-id
)

// BuildUserBookingsKey returns the reverse-index key for a user's bookings.
func BuildUserBookingsKey(userID string) string {
	return fmt.Sprintf(keyUserBookings, userID)
}

// ================== TRIP CATALOG CACHE ==================

const (
	CacheKeyTripList   = KeyPrefix + ":trips:list"         // + :from:X:to:Y:date:Z
	cacheKeyTripDetail = KeyPrefix + ":trips:detail:uuid:" // + trip-id
)

// BuildTripDetailKey returns the cache key for a single trip.
func BuildTripDetailKey(tripID string) string {
	return cacheKeyTripDetail + tripID
}

// BuildTripListKey returns the cache key for a filtered trip listing.
func BuildTripListKey(from, to, date string) string {
	return fmt.Sprintf("%s:from:%s:to:%s:date:%s", CacheKeyTripList, from, to, date)
}
