package services_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/carpool_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/services"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fixture struct {
	store    *memory.Store
	bookings *services.BookingService
	rides    *services.RideService
	driver   domain.Actor
	admin    domain.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	driver := domain.Actor{ID: uuid.New(), Role: domain.RoleDriver}
	store.Drivers().Put(domain.DriverProfile{UserID: driver.ID, VehicleSeats: 6, Verified: true})

	log := quietLogger()
	return &fixture{
		store:    store,
		bookings: services.NewBookingService(store.Rides(), store.Bookings(), store.Drivers(), nil, log),
		rides:    services.NewRideService(store.Rides(), nil, log),
		driver:   driver,
		admin:    domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin},
	}
}

func passenger() domain.Actor {
	return domain.Actor{ID: uuid.New(), Role: domain.RolePassenger}
}

func (f *fixture) publish(t *testing.T, seats int) *domain.Ride {
	t.Helper()

	ride, err := f.bookings.PublishRide(context.Background(), f.driver, services.PublishRideRequest{
		Origin:       domain.Location{Text: "Indiranagar"},
		Destination:  domain.Location{Text: "Airport"},
		StartsAt:     time.Now().Add(6 * time.Hour),
		TotalSeats:   seats,
		PricePerSeat: 400,
	})
	require.NoError(t, err)
	return ride
}

func (f *fixture) request(t *testing.T, rideID uuid.UUID, seats int) *domain.Booking {
	t.Helper()

	booking, err := f.bookings.CreateBooking(context.Background(), passenger(), services.CreateBookingRequest{
		RideID:         rideID,
		RequestedSeats: seats,
	})
	require.NoError(t, err)
	return booking
}

func (f *fixture) ride(t *testing.T, rideID uuid.UUID) *domain.Ride {
	t.Helper()

	ride, err := f.store.Rides().GetByID(context.Background(), rideID)
	require.NoError(t, err)
	return ride
}

// requireLedgerBalanced checks that the seats missing from the ride are
// exactly those held by accepted bookings.
func (f *fixture) requireLedgerBalanced(t *testing.T, rideID uuid.UUID) {
	t.Helper()

	ride := f.ride(t, rideID)
	require.NoError(t, ride.CheckInvariant())

	bookings, err := f.store.Bookings().ListByRide(context.Background(), rideID)
	require.NoError(t, err)

	accepted := 0
	for _, b := range bookings {
		if b.Status == domain.BookingAccepted {
			accepted += b.RequestedSeats
		}
	}
	require.Equal(t, accepted, ride.TotalSeats-ride.RemainingSeats, "seat ledger out of balance")
}
