package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
)

var (
	// ErrVersionConflict is returned when a record changed between read and write.
	ErrVersionConflict = errors.New("optimistic lock failed: record was modified by another transaction")
	// ErrSkipWrite lets an update callback finish without persisting anything.
	ErrSkipWrite = errors.New("skip write")
)

// RideMutation runs inside the ride-scoped atomic unit. It mutates the ride in
// place; returning an error aborts the unit without writing.
type RideMutation func(ride *domain.Ride) error

// RideBookingMutation runs inside the atomic unit scoped to one ride and one of
// its bookings.
type RideBookingMutation func(ride *domain.Ride, booking *domain.Booking) error

type RideRepository interface {
	Create(ctx context.Context, ride *domain.Ride) error
	GetByID(ctx context.Context, rideID uuid.UUID) (*domain.Ride, error)
	Search(ctx context.Context, filter domain.RideFilter) ([]domain.Ride, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Ride, error)
	// Update serializes fn against every other mutation of the same ride.
	Update(ctx context.Context, rideID uuid.UUID, fn RideMutation) (*domain.Ride, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	ListByPassenger(ctx context.Context, passengerID uuid.UUID) ([]domain.Booking, error)
	ListByRide(ctx context.Context, rideID uuid.UUID) ([]domain.Booking, error)
	// UpdateWithRide loads the booking and its ride, applies fn and writes both
	// back as one unit, serialized against every other mutation of that ride.
	UpdateWithRide(ctx context.Context, bookingID uuid.UUID, fn RideBookingMutation) (*domain.Ride, *domain.Booking, error)
}

type DriverRepository interface {
	GetDriverProfile(ctx context.Context, userID uuid.UUID) (*domain.DriverProfile, error)
}
