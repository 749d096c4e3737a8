package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/ports"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	now := time.Now()
	booking.Version = 1
	booking.CreatedAt = now
	booking.UpdatedAt = now

	query := `
	INSERT INTO bookings (id, ride_id, passenger_id, requested_seats, status, notes, version, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.RideID, booking.PassengerID, booking.RequestedSeats,
		booking.Status, booking.Notes, booking.Version, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepository) ListByPassenger(ctx context.Context, passengerID uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE passenger_id = $1 ORDER BY created_at DESC`

	return r.queryBookings(ctx, query, passengerID)
}

func (r *BookingRepository) ListByRide(ctx context.Context, rideID uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ride_id = $1 ORDER BY created_at ASC`

	return r.queryBookings(ctx, query, rideID)
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}

// UpdateWithRide locks the ride row before the booking row so that every
// mutation touching a ride's inventory queues on the same lock.
func (r *BookingRepository) UpdateWithRide(ctx context.Context, bookingID uuid.UUID, fn ports.RideBookingMutation) (*domain.Ride, *domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}

	defer tx.Rollback()

	var rideID uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT ride_id FROM bookings WHERE id = $1`, bookingID).Scan(&rideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrBookingNotFound
		}
		return nil, nil, err
	}

	currentRide, err := lockRide(ctx, tx, rideID)
	if err != nil {
		return nil, nil, err
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	currentBooking, err := scanBooking(tx.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrBookingNotFound
		}
		return nil, nil, err
	}

	ride, booking := *currentRide, *currentBooking
	if err := fn(&ride, &booking); err != nil {
		if errors.Is(err, ports.ErrSkipWrite) {
			return currentRide, currentBooking, nil
		}
		return nil, nil, err
	}
	if err := ride.CheckInvariant(); err != nil {
		return nil, nil, err
	}

	if ride.RemainingSeats != currentRide.RemainingSeats || ride.Status != currentRide.Status {
		if err := writeRide(ctx, tx, &ride, currentRide.Version); err != nil {
			return nil, nil, err
		}
	}

	if err := writeBooking(ctx, tx, &booking, currentBooking.Version); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &ride, &booking, nil
}

func writeBooking(ctx context.Context, tx *sql.Tx, booking *domain.Booking, expectedVersion int) error {
	query := `
	UPDATE bookings
	SET status = $1,
		version = version + 1,
		updated_at = $2
	WHERE id = $3 AND version = $4
	`

	now := time.Now()
	result, err := tx.ExecContext(ctx, query, booking.Status, now, booking.ID, expectedVersion)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ports.ErrVersionConflict
	}

	booking.Version = expectedVersion + 1
	booking.UpdatedAt = now
	return nil
}
