package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/ports"
)

type BookingRepository struct {
	store *Store
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.rides[booking.RideID]; !ok {
		return domain.ErrRideNotFound
	}
	if _, exists := r.store.bookings[booking.ID]; exists {
		return domain.ConflictError{Resource: "booking", Msg: "duplicate id"}
	}

	now := r.store.now()
	booking.Version = 1
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.store.bookings[booking.ID] = *booking

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	booking, ok := r.store.bookings[bookingID]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}

	return &booking, nil
}

func (r *BookingRepository) ListByPassenger(ctx context.Context, passengerID uuid.UUID) ([]domain.Booking, error) {
	bookings, err := r.list(ctx, func(b domain.Booking) bool { return b.PassengerID == passengerID })
	if err != nil {
		return nil, err
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *BookingRepository) ListByRide(ctx context.Context, rideID uuid.UUID) ([]domain.Booking, error) {
	bookings, err := r.list(ctx, func(b domain.Booking) bool { return b.RideID == rideID })
	if err != nil {
		return nil, err
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *BookingRepository) list(ctx context.Context, keep func(domain.Booking) bool) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var bookings []domain.Booking
	for _, b := range r.store.bookings {
		if keep(b) {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (r *BookingRepository) UpdateWithRide(ctx context.Context, bookingID uuid.UUID, fn ports.RideBookingMutation) (*domain.Ride, *domain.Booking, error) {
	// The ride id is immutable, so it is safe to resolve it before locking.
	booking, err := r.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	lock := r.store.rideLock(booking.RideID)
	lock.Lock()
	defer lock.Unlock()

	r.store.mu.RLock()
	currentRide, rideOK := r.store.rides[booking.RideID]
	currentBooking := r.store.bookings[bookingID]
	r.store.mu.RUnlock()

	if !rideOK {
		return nil, nil, domain.ErrRideNotFound
	}

	ride := cloneRide(currentRide)
	next := currentBooking
	if err := fn(&ride, &next); err != nil {
		if errors.Is(err, ports.ErrSkipWrite) {
			out := cloneRide(currentRide)
			return &out, &currentBooking, nil
		}
		return nil, nil, err
	}
	if err := ride.CheckInvariant(); err != nil {
		return nil, nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.rides[ride.ID].Version != currentRide.Version || r.store.bookings[bookingID].Version != currentBooking.Version {
		return nil, nil, ports.ErrVersionConflict
	}

	now := r.store.now()
	if rideChanged(currentRide, ride) {
		ride.Version = currentRide.Version + 1
		ride.UpdatedAt = now
		r.store.rides[ride.ID] = cloneRide(ride)
	}
	next.Version = currentBooking.Version + 1
	next.UpdatedAt = now
	r.store.bookings[bookingID] = next

	return &ride, &next, nil
}

func rideChanged(before, after domain.Ride) bool {
	return before.RemainingSeats != after.RemainingSeats || before.Status != after.Status
}
