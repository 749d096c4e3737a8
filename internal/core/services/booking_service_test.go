package services_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/ports"
	"github.com/srgjo27/carpool_booking/internal/core/ports/mocks"
	"github.com/srgjo27/carpool_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPublishRide_Success(t *testing.T) {
	f := newFixture(t)

	ride := f.publish(t, 4)

	assert.Equal(t, f.driver.ID, ride.DriverID)
	assert.Equal(t, 4, ride.TotalSeats)
	assert.Equal(t, 4, ride.RemainingSeats)
	assert.Equal(t, domain.RideOpen, ride.Status)
}

func TestPublishRide_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	valid := services.PublishRideRequest{
		Origin:      domain.Location{Text: "A"},
		Destination: domain.Location{Text: "B"},
		StartsAt:    time.Now().Add(time.Hour),
		TotalSeats:  2,
	}

	_, err := f.bookings.PublishRide(ctx, passenger(), valid)
	assert.True(t, domain.IsAuthorization(err))

	zeroSeats := valid
	zeroSeats.TotalSeats = 0
	_, err = f.bookings.PublishRide(ctx, f.driver, zeroSeats)
	assert.True(t, domain.IsValidation(err))

	tooMany := valid
	tooMany.TotalSeats = 7
	_, err = f.bookings.PublishRide(ctx, f.driver, tooMany)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "vehicle capacity of 6")

	noOrigin := valid
	noOrigin.Origin.Text = "  "
	_, err = f.bookings.PublishRide(ctx, f.driver, noOrigin)
	assert.True(t, domain.IsValidation(err))

	unverified := domain.Actor{ID: uuid.New(), Role: domain.RoleDriver}
	f.store.Drivers().Put(domain.DriverProfile{UserID: unverified.ID, VehicleSeats: 4})
	_, err = f.bookings.PublishRide(ctx, unverified, valid)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "not verified")

	unknown := domain.Actor{ID: uuid.New(), Role: domain.RoleDriver}
	_, err = f.bookings.PublishRide(ctx, unknown, valid)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateBooking_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 2)

	_, err := f.bookings.CreateBooking(ctx, passenger(), services.CreateBookingRequest{RideID: uuid.New(), RequestedSeats: 1})
	assert.True(t, domain.IsNotFound(err))

	_, err = f.bookings.CreateBooking(ctx, passenger(), services.CreateBookingRequest{RideID: ride.ID, RequestedSeats: 0})
	assert.True(t, domain.IsValidation(err))

	_, err = f.bookings.CreateBooking(ctx, passenger(), services.CreateBookingRequest{RideID: ride.ID, RequestedSeats: 3})
	assert.True(t, domain.IsValidation(err))

	_, err = f.bookings.CancelRide(ctx, f.driver, ride.ID)
	require.NoError(t, err)

	_, err = f.bookings.CreateBooking(ctx, passenger(), services.CreateBookingRequest{RideID: ride.ID, RequestedSeats: 1})
	assert.True(t, domain.IsConflict(err))
}

func TestCreateBooking_DoesNotHoldSeats(t *testing.T) {
	f := newFixture(t)
	ride := f.publish(t, 2)

	b := f.request(t, ride.ID, 2)

	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 2, f.ride(t, ride.ID).RemainingSeats)
}

func TestScenario_InsufficientSeatsThenReject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 4)

	a := f.request(t, ride.ID, 3)
	b := f.request(t, ride.ID, 2)

	res, err := f.bookings.AcceptBooking(ctx, f.driver, a.ID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, 1, res.Ride.RemainingSeats)
	assert.Equal(t, domain.RideOpen, res.Ride.Status)

	_, err = f.bookings.AcceptBooking(ctx, f.driver, b.ID)
	require.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "needs 2, has 1")

	res, err = f.bookings.RejectBooking(ctx, f.driver, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingRejected, res.Booking.Status)

	after := f.ride(t, ride.ID)
	assert.Equal(t, 1, after.RemainingSeats)
	assert.Equal(t, domain.RideOpen, after.Status)
	f.requireLedgerBalanced(t, ride.ID)
}

func TestScenario_CancelAcceptedReopensFullRide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 2)
	b := f.request(t, ride.ID, 2)

	res, err := f.bookings.AcceptBooking(ctx, f.driver, b.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RideFull, res.Ride.Status)
	require.Equal(t, 0, res.Ride.RemainingSeats)

	res, err = f.bookings.CancelBooking(ctx, f.driver, b.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, res.Booking.Status)
	assert.Equal(t, 2, res.Ride.RemainingSeats)
	assert.Equal(t, domain.RideOpen, res.Ride.Status)
	f.requireLedgerBalanced(t, ride.ID)
}

func TestAcceptBooking_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 3)
	b := f.request(t, ride.ID, 2)

	_, err := f.bookings.AcceptBooking(ctx, f.driver, b.ID)
	require.NoError(t, err)
	before := f.ride(t, ride.ID)

	res, err := f.bookings.AcceptBooking(ctx, f.driver, b.ID)

	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, domain.BookingAccepted, res.Booking.Status)
	after := f.ride(t, ride.ID)
	assert.Equal(t, before.RemainingSeats, after.RemainingSeats)
	assert.Equal(t, before.Version, after.Version)

	_, ok := res.Event()
	assert.False(t, ok)
}

func TestAcceptThenCancel_RestoresInventory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 5)
	other := f.request(t, ride.ID, 1)
	b := f.request(t, ride.ID, 3)

	_, err := f.bookings.AcceptBooking(ctx, f.driver, other.ID)
	require.NoError(t, err)
	before := f.ride(t, ride.ID)

	_, err = f.bookings.AcceptBooking(ctx, f.driver, b.ID)
	require.NoError(t, err)
	_, err = f.bookings.CancelBooking(ctx, f.admin, b.ID)
	require.NoError(t, err)

	after := f.ride(t, ride.ID)
	assert.Equal(t, before.RemainingSeats, after.RemainingSeats)
	assert.Equal(t, before.Status, after.Status)
	f.requireLedgerBalanced(t, ride.ID)
}

func TestAcceptBooking_Authorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 2)
	b := f.request(t, ride.ID, 1)

	_, err := f.bookings.AcceptBooking(ctx, passenger(), b.ID)
	assert.True(t, domain.IsAuthorization(err))

	_, err = f.bookings.AcceptBooking(ctx, f.admin, b.ID)
	assert.True(t, domain.IsAuthorization(err))

	_, err = f.bookings.RejectBooking(ctx, passenger(), b.ID)
	assert.True(t, domain.IsAuthorization(err))

	_, err = f.bookings.AcceptBooking(ctx, f.driver, uuid.New())
	assert.True(t, domain.IsNotFound(err))

	assert.Equal(t, 2, f.ride(t, ride.ID).RemainingSeats)
}

func TestRejectBooking_OnlyPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 2)
	b := f.request(t, ride.ID, 1)

	_, err := f.bookings.AcceptBooking(ctx, f.driver, b.ID)
	require.NoError(t, err)

	_, err = f.bookings.RejectBooking(ctx, f.driver, b.ID)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, 1, f.ride(t, ride.ID).RemainingSeats)
}

func TestCancelBooking_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 3)

	owner := passenger()
	b, err := f.bookings.CreateBooking(ctx, owner, services.CreateBookingRequest{RideID: ride.ID, RequestedSeats: 1})
	require.NoError(t, err)

	_, err = f.bookings.CancelBooking(ctx, passenger(), b.ID)
	assert.True(t, domain.IsAuthorization(err))

	res, err := f.bookings.CancelBooking(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, res.Booking.Status)
	assert.Equal(t, 3, res.Ride.RemainingSeats)

	_, err = f.bookings.CancelBooking(ctx, owner, b.ID)
	assert.True(t, domain.IsConflict(err))

	rejected := f.request(t, ride.ID, 1)
	_, err = f.bookings.RejectBooking(ctx, f.driver, rejected.ID)
	require.NoError(t, err)
	_, err = f.bookings.CancelBooking(ctx, f.admin, rejected.ID)
	assert.True(t, domain.IsConflict(err))
}

func TestCancelRide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 3)
	pending := f.request(t, ride.ID, 1)
	accepted := f.request(t, ride.ID, 2)
	_, err := f.bookings.AcceptBooking(ctx, f.driver, accepted.ID)
	require.NoError(t, err)

	_, err = f.bookings.CancelRide(ctx, passenger(), ride.ID)
	assert.True(t, domain.IsAuthorization(err))

	cancelled, err := f.bookings.CancelRide(ctx, f.driver, ride.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RideCancelled, cancelled.Status)
	assert.Equal(t, 1, cancelled.RemainingSeats)

	again, err := f.bookings.CancelRide(ctx, f.admin, ride.ID)
	require.NoError(t, err)
	assert.Equal(t, cancelled.Version, again.Version)

	stillPending, err := f.store.Bookings().GetByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, stillPending.Status)

	_, err = f.bookings.AcceptBooking(ctx, f.driver, pending.ID)
	assert.True(t, domain.IsConflict(err))

	res, err := f.bookings.CancelBooking(ctx, f.driver, accepted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, res.Booking.Status)
	assert.Equal(t, 1, res.Ride.RemainingSeats)
	assert.Equal(t, domain.RideCancelled, res.Ride.Status)

	_, err = f.bookings.CancelRide(ctx, f.driver, uuid.New())
	assert.True(t, domain.IsNotFound(err))
}

func TestAcceptBooking_Concurrent(t *testing.T) {
	cases := []struct {
		name     string
		requests int
		seats    int
	}{
		{"more requests than seats", 20, 5},
		{"fewer requests than seats", 3, 5},
		{"exact fit", 6, 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ride := f.publish(t, tc.seats)

			ids := make([]uuid.UUID, tc.requests)
			for i := range ids {
				ids[i] = f.request(t, ride.ID, 1).ID
			}

			var wg sync.WaitGroup
			var mu sync.Mutex
			successes, conflicts := 0, 0
			start := make(chan struct{})

			for _, id := range ids {
				wg.Add(1)
				go func(id uuid.UUID) {
					defer wg.Done()
					<-start
					_, err := f.bookings.AcceptBooking(context.Background(), f.driver, id)

					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						successes++
					case domain.IsConflict(err):
						conflicts++
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}(id)
			}
			close(start)
			wg.Wait()

			want := min(tc.requests, tc.seats)
			assert.Equal(t, want, successes)
			assert.Equal(t, tc.requests-want, conflicts)
			assert.Equal(t, max(0, tc.seats-tc.requests), f.ride(t, ride.ID).RemainingSeats)
			f.requireLedgerBalanced(t, ride.ID)
		})
	}
}

func TestLedgerStaysBalancedUnderRandomOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 6)
	rng := rand.New(rand.NewSource(42))

	var bookings []uuid.UUID
	for i := 0; i < 200; i++ {
		switch op := rng.Intn(4); {
		case op == 0 || len(bookings) == 0:
			b, err := f.bookings.CreateBooking(ctx, passenger(), services.CreateBookingRequest{
				RideID:         ride.ID,
				RequestedSeats: 1 + rng.Intn(3),
			})
			if err == nil {
				bookings = append(bookings, b.ID)
			}
		case op == 1:
			_, _ = f.bookings.AcceptBooking(ctx, f.driver, bookings[rng.Intn(len(bookings))])
		case op == 2:
			_, _ = f.bookings.RejectBooking(ctx, f.driver, bookings[rng.Intn(len(bookings))])
		default:
			_, _ = f.bookings.CancelBooking(ctx, f.driver, bookings[rng.Intn(len(bookings))])
		}

		current := f.ride(t, ride.ID)
		require.GreaterOrEqual(t, current.RemainingSeats, 0)
		require.LessOrEqual(t, current.RemainingSeats, current.TotalSeats)
		f.requireLedgerBalanced(t, ride.ID)
	}
}

func TestListRideBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 3)
	f.request(t, ride.ID, 1)
	f.request(t, ride.ID, 1)

	bookings, err := f.bookings.ListRideBookings(ctx, f.driver, ride.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	_, err = f.bookings.ListRideBookings(ctx, passenger(), ride.ID)
	assert.True(t, domain.IsAuthorization(err))

	_, err = f.bookings.ListRideBookings(ctx, f.admin, uuid.New())
	assert.True(t, domain.IsNotFound(err))
}

func TestListPassengerBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ride := f.publish(t, 3)
	me := passenger()

	_, err := f.bookings.CreateBooking(ctx, me, services.CreateBookingRequest{RideID: ride.ID, RequestedSeats: 1})
	require.NoError(t, err)
	f.request(t, ride.ID, 1)

	mine, err := f.bookings.ListPassengerBookings(ctx, me)

	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, me.ID, mine[0].PassengerID)
}

func TestAcceptBooking_VersionConflictIsRetryable(t *testing.T) {
	rideRepo := mocks.NewRideRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	driverRepo := mocks.NewDriverRepository(t)
	svc := services.NewBookingService(rideRepo, bookingRepo, driverRepo, nil, quietLogger())

	ctx := context.Background()
	bookingID := uuid.New()
	bookingRepo.On("UpdateWithRide", ctx, bookingID, mock.AnythingOfType("ports.RideBookingMutation")).
		Return(nil, nil, ports.ErrVersionConflict)

	_, err := svc.AcceptBooking(ctx, domain.Actor{ID: uuid.New(), Role: domain.RoleDriver}, bookingID)

	assert.True(t, domain.IsConflict(err))
	assert.ErrorIs(t, err, ports.ErrVersionConflict)
}

func TestAcceptBooking_StorageFailureIsInternal(t *testing.T) {
	rideRepo := mocks.NewRideRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	driverRepo := mocks.NewDriverRepository(t)
	svc := services.NewBookingService(rideRepo, bookingRepo, driverRepo, nil, quietLogger())

	ctx := context.Background()
	bookingID := uuid.New()
	bookingRepo.On("UpdateWithRide", ctx, bookingID, mock.Anything).
		Return(nil, nil, errors.New("connection reset"))

	_, err := svc.AcceptBooking(ctx, domain.Actor{ID: uuid.New(), Role: domain.RoleDriver}, bookingID)

	assert.True(t, domain.IsInternal(err))
	assert.False(t, domain.IsConflict(err))
}

func TestAcceptBooking_InvalidatesRideCache(t *testing.T) {
	f := newFixture(t)
	cache := mocks.NewRideCache(t)
	svc := services.NewBookingService(f.store.Rides(), f.store.Bookings(), f.store.Drivers(), cache, quietLogger())
	ride := f.publish(t, 2)
	b := f.request(t, ride.ID, 1)
	ctx := context.Background()

	cache.On("Invalidate", ctx, ride.ID, 2).Return(errors.New("redis down")).Once()

	res, err := svc.AcceptBooking(ctx, f.driver, b.ID)

	require.NoError(t, err)
	event, ok := res.Event()
	require.True(t, ok)
	assert.Equal(t, domain.BookingEvent{BookingID: b.ID, RideID: ride.ID, NewStatus: domain.BookingAccepted}, event)

	// Rejecting does not touch inventory, so the cache is left alone.
	other := f.request(t, ride.ID, 1)
	_, err = svc.RejectBooking(ctx, f.driver, other.ID)
	require.NoError(t, err)
}

func TestPublishRide_StorageFailure(t *testing.T) {
	rideRepo := mocks.NewRideRepository(t)
	bookingRepo := mocks.NewBookingRepository(t)
	driverRepo := mocks.NewDriverRepository(t)
	svc := services.NewBookingService(rideRepo, bookingRepo, driverRepo, nil, quietLogger())

	ctx := context.Background()
	driver := domain.Actor{ID: uuid.New(), Role: domain.RoleDriver}
	driverRepo.On("GetDriverProfile", ctx, driver.ID).
		Return(&domain.DriverProfile{UserID: driver.ID, VehicleSeats: 4, Verified: true}, nil)
	rideRepo.On("Create", ctx, mock.AnythingOfType("*domain.Ride")).Return(errors.New("disk full"))

	_, err := svc.PublishRide(ctx, driver, services.PublishRideRequest{
		Origin:      domain.Location{Text: "A"},
		Destination: domain.Location{Text: "B"},
		StartsAt:    time.Now(),
		TotalSeats:  4,
	})

	assert.True(t, domain.IsInternal(err))
}
