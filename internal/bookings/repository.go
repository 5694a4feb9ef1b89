package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Concurrency-safe booking creation
	CommitBooking(ctx context.Context, booking *Booking) error

	// Read operations
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID string) ([]Booking, error)
	GetBookingsByIDs(ctx context.Context, ids []uuid.UUID) ([]Booking, error)
	CountUserBookings(ctx context.Context, userID string) (int64, error)

	// Sold ledger
	SoldSeats(ctx context.Context, tripID uuid.UUID) (map[string]bool, error)
	IsSeatSold(ctx context.Context, tripID, seat string) (bool, error)

	// Admin operations
	MarkPaymentVerified(ctx context.Context, id uuid.UUID) (*Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CommitBooking writes the booking, its seat line items and the sold
// ledger rows in one transaction. The trip row is locked first so
// concurrent commits on the same trip serialize; the ledger's unique
// index catches anything that slips past on engines without row locks.
func (r *repository) CommitBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Serialize commits per trip
		var tripRow struct {
			ID         uuid.UUID `gorm:"column:id"`
			TotalSeats int       `gorm:"column:total_seats"`
		}

		lockQuery := tx.Table("trips").
			Select("id, total_seats").
			Where("id = ?", booking.TripID)
		if tx.Dialector.Name() == "postgres" {
			// sqlite has no FOR UPDATE; its single-writer transaction
			// already serializes this path
			lockQuery = lockQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := lockQuery.First(&tripRow).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("trip not found")
			}
			return fmt.Errorf("failed to lock trip: %w", err)
		}

		// 2. Re-check the sold ledger under the lock
		labels := booking.SeatLabels()
		var sold []TripSeat
		err := tx.Where("trip_id = ? AND seat_label IN ?", booking.TripID, labels).
			Find(&sold).Error
		if err != nil {
			return fmt.Errorf("failed to check sold seats: %w", err)
		}
		if len(sold) > 0 {
			return &SeatAlreadySoldError{
				TripID: booking.TripID.String(),
				Seat:   sold[0].SeatLabel,
			}
		}

		// 3. Create the booking with its seat line items
		if err := tx.Create(booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateTransaction
			}
			return fmt.Errorf("failed to create booking: %w", err)
		}

		// 4. Append to the sold ledger
		now := time.Now()
		ledger := make([]TripSeat, 0, len(labels))
		for _, label := range labels {
			ledger = append(ledger, TripSeat{
				ID:        uuid.New(),
				TripID:    booking.TripID,
				SeatLabel: label,
				BookingID: booking.ID,
				CreatedAt: now,
			})
		}
		if err := tx.Create(&ledger).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &SeatAlreadySoldError{
					TripID: booking.TripID.String(),
					Seat:   labels[0],
				}
			}
			return fmt.Errorf("failed to append sold ledger: %w", err)
		}

		return nil
	})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID string) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) GetBookingsByIDs(ctx context.Context, ids []uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) CountUserBookings(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *repository) SoldSeats(ctx context.Context, tripID uuid.UUID) (map[string]bool, error) {
	var rows []TripSeat
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	sold := make(map[string]bool, len(rows))
	for _, row := range rows {
		sold[row.SeatLabel] = true
	}
	return sold, nil
}

// IsSeatSold satisfies the lock manager's ledger check. tripID arrives
// as an opaque string from that side.
func (r *repository) IsSeatSold(ctx context.Context, tripID, seat string) (bool, error) {
	id, err := uuid.Parse(tripID)
	if err != nil {
		return false, fmt.Errorf("invalid trip id %q", tripID)
	}

	var count int64
	err = r.db.WithContext(ctx).
		Model(&TripSeat{}).
		Where("trip_id = ? AND seat_label = ?", id, seat).
		Count(&count).Error
	return count > 0, err
}

// MarkPaymentVerified flips the verification flag to true. Verifying an
// already verified booking is a no-op, not an error.
func (r *repository) MarkPaymentVerified(ctx context.Context, id uuid.UUID) (*Booking, error) {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_verified": true,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetBookingByID(ctx, id)
}
