package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/ports"
)

type PublishRideRequest struct {
	Origin       domain.Location   `json:"startLocation"`
	Destination  domain.Location   `json:"endLocation"`
	Waypoints    []domain.Location `json:"waypoints"`
	StartsAt     time.Time         `json:"startDateTime"`
	TotalSeats   int               `json:"totalSeats"`
	PricePerSeat float64           `json:"pricePerSeat"`
	Notes        string            `json:"notes"`
}

type CreateBookingRequest struct {
	RideID         uuid.UUID `json:"rideId"`
	RequestedSeats int       `json:"requestedSeats"`
	Notes          string    `json:"notes"`
}

// BookingResult is the state after a booking operation. Changed is false
// when the call was an idempotent no-op.
type BookingResult struct {
	Booking *domain.Booking
	Ride    *domain.Ride
	Changed bool
}

func (r BookingResult) Event() (domain.BookingEvent, bool) {
	if !r.Changed || r.Booking == nil {
		return domain.BookingEvent{}, false
	}
	return domain.BookingEvent{
		BookingID: r.Booking.ID,
		RideID:    r.Booking.RideID,
		NewStatus: r.Booking.Status,
	}, true
}

// BookingService is the only writer of ride inventory and booking status.
type BookingService struct {
	rideRepo    ports.RideRepository
	bookingRepo ports.BookingRepository
	driverRepo  ports.DriverRepository
	cache       ports.RideCache
	log         *logrus.Logger
}

func NewBookingService(
	rideRepo ports.RideRepository,
	bookingRepo ports.BookingRepository,
	driverRepo ports.DriverRepository,
	cache ports.RideCache,
	log *logrus.Logger,
) *BookingService {
	return &BookingService{
		rideRepo:    rideRepo,
		bookingRepo: bookingRepo,
		driverRepo:  driverRepo,
		cache:       cache,
		log:         log,
	}
}

func (s *BookingService) PublishRide(ctx context.Context, actor domain.Actor, req PublishRideRequest) (*domain.Ride, error) {
	if actor.Role != domain.RoleDriver {
		return nil, domain.AuthorizationError{Msg: "only drivers can publish rides"}
	}

	req.Origin.Text = strings.TrimSpace(req.Origin.Text)
	req.Destination.Text = strings.TrimSpace(req.Destination.Text)

	switch {
	case req.Origin.Text == "":
		return nil, domain.ValidationError{Field: "startLocation.text", Msg: "is required"}
	case req.Destination.Text == "":
		return nil, domain.ValidationError{Field: "endLocation.text", Msg: "is required"}
	case req.StartsAt.IsZero():
		return nil, domain.ValidationError{Field: "startDateTime", Msg: "is required"}
	case req.TotalSeats < 1:
		return nil, domain.ValidationError{Field: "totalSeats", Msg: "must be at least 1"}
	case req.PricePerSeat < 0:
		return nil, domain.ValidationError{Field: "pricePerSeat", Msg: "must not be negative"}
	}

	profile, err := s.driverRepo.GetDriverProfile(ctx, actor.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ValidationError{Field: "driver", Msg: "driver is not verified"}
		}
		return nil, translate(err, "driver")
	}

	if !profile.Verified {
		return nil, domain.ValidationError{Field: "driver", Msg: "driver is not verified"}
	}

	if req.TotalSeats > profile.VehicleSeats {
		return nil, domain.ValidationError{
			Field: "totalSeats",
			Msg:   fmt.Sprintf("exceeds vehicle capacity of %d", profile.VehicleSeats),
		}
	}

	ride := &domain.Ride{
		ID:             uuid.New(),
		DriverID:       actor.ID,
		Origin:         req.Origin,
		Destination:    req.Destination,
		Waypoints:      req.Waypoints,
		StartsAt:       req.StartsAt,
		TotalSeats:     req.TotalSeats,
		RemainingSeats: req.TotalSeats,
		PricePerSeat:   req.PricePerSeat,
		Status:         domain.RideOpen,
		Notes:          req.Notes,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, translate(err, "ride")
	}

	s.log.WithFields(logrus.Fields{
		"ride_id":  ride.ID,
		"actor_id": actor.ID,
		"seats":    ride.TotalSeats,
	}).Info("ride published")

	return ride, nil
}

// CancelRide is terminal for the ride. Bookings on it keep their status.
func (s *BookingService) CancelRide(ctx context.Context, actor domain.Actor, rideID uuid.UUID) (*domain.Ride, error) {
	ride, err := s.rideRepo.Update(ctx, rideID, func(r *domain.Ride) error {
		if !r.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
			return domain.AuthorizationError{Action: "cancel this ride"}
		}
		if !r.Cancel() {
			return ports.ErrSkipWrite
		}
		return nil
	})
	if err != nil {
		s.rejected("cancel ride", actor, rideID, uuid.Nil, err)
		return nil, translate(err, "ride")
	}

	s.invalidate(ctx, ride)

	s.log.WithFields(logrus.Fields{
		"ride_id":  rideID,
		"actor_id": actor.ID,
		"status":   ride.Status,
	}).Info("ride cancelled")

	return ride, nil
}

// CreateBooking checks the request against current inventory without
// reserving anything; seats are only taken on accept.
func (s *BookingService) CreateBooking(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, translate(err, "ride")
	}

	if !ride.IsOpen() {
		return nil, domain.ConflictError{Resource: "ride", Msg: fmt.Sprintf("ride is %s", ride.Status)}
	}

	if req.RequestedSeats < 1 {
		return nil, domain.ValidationError{Field: "requestedSeats", Msg: "must be at least 1"}
	}

	if req.RequestedSeats > ride.RemainingSeats {
		return nil, domain.ValidationError{
			Field: "requestedSeats",
			Msg:   fmt.Sprintf("not enough seats remaining: requested %d, remaining %d", req.RequestedSeats, ride.RemainingSeats),
		}
	}

	booking := &domain.Booking{
		ID:             uuid.New(),
		RideID:         ride.ID,
		PassengerID:    actor.ID,
		RequestedSeats: req.RequestedSeats,
		Status:         domain.BookingPending,
		Notes:          req.Notes,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, translate(err, "booking")
	}

	s.log.WithFields(logrus.Fields{
		"ride_id":    ride.ID,
		"booking_id": booking.ID,
		"actor_id":   actor.ID,
		"seats":      booking.RequestedSeats,
	}).Info("booking requested")

	return booking, nil
}

// AcceptBooking decrements the ride's inventory. Accepting an already
// accepted booking returns the current state unchanged.
func (s *BookingService) AcceptBooking(ctx context.Context, actor domain.Actor, bookingID uuid.UUID) (*BookingResult, error) {
	changed := false
	ride, booking, err := s.bookingRepo.UpdateWithRide(ctx, bookingID, func(r *domain.Ride, b *domain.Booking) error {
		if !r.IsOwnedBy(actor.ID) {
			return domain.AuthorizationError{Action: "accept booking for this ride"}
		}
		if b.Status == domain.BookingAccepted {
			return ports.ErrSkipWrite
		}
		if err := b.Accept(); err != nil {
			return err
		}
		if err := r.Reserve(b.RequestedSeats); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		s.rejected("accept booking", actor, uuid.Nil, bookingID, err)
		return nil, translate(err, "booking")
	}

	if changed {
		s.invalidate(ctx, ride)
		s.transitioned(actor, ride, booking)
	}

	return &BookingResult{Booking: booking, Ride: ride, Changed: changed}, nil
}

func (s *BookingService) RejectBooking(ctx context.Context, actor domain.Actor, bookingID uuid.UUID) (*BookingResult, error) {
	ride, booking, err := s.bookingRepo.UpdateWithRide(ctx, bookingID, func(r *domain.Ride, b *domain.Booking) error {
		if !r.IsOwnedBy(actor.ID) {
			return domain.AuthorizationError{Action: "reject this booking"}
		}
		return b.Reject()
	})
	if err != nil {
		s.rejected("reject booking", actor, uuid.Nil, bookingID, err)
		return nil, translate(err, "booking")
	}

	s.transitioned(actor, ride, booking)

	return &BookingResult{Booking: booking, Ride: ride, Changed: true}, nil
}

// CancelBooking can be called by the passenger, the ride's driver or an
// admin. Seats of an accepted booking go back to the ride.
func (s *BookingService) CancelBooking(ctx context.Context, actor domain.Actor, bookingID uuid.UUID) (*BookingResult, error) {
	released := false
	ride, booking, err := s.bookingRepo.UpdateWithRide(ctx, bookingID, func(r *domain.Ride, b *domain.Booking) error {
		if !b.IsOwnedBy(actor.ID) && !r.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
			return domain.AuthorizationError{Msg: "only the passenger, the driver or an admin can cancel this booking"}
		}
		prior, err := b.Cancel()
		if err != nil {
			return err
		}
		if prior == domain.BookingAccepted && !r.IsCancelled() {
			released = true
			return r.Release(b.RequestedSeats)
		}
		return nil
	})
	if err != nil {
		s.rejected("cancel booking", actor, uuid.Nil, bookingID, err)
		return nil, translate(err, "booking")
	}

	if released {
		s.invalidate(ctx, ride)
	}
	s.transitioned(actor, ride, booking)

	return &BookingResult{Booking: booking, Ride: ride, Changed: true}, nil
}

func (s *BookingService) ListPassengerBookings(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByPassenger(ctx, actor.ID)
	if err != nil {
		return nil, translate(err, "booking")
	}
	return bookings, nil
}

func (s *BookingService) ListRideBookings(ctx context.Context, actor domain.Actor, rideID uuid.UUID) ([]domain.Booking, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, translate(err, "ride")
	}

	if !ride.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, domain.AuthorizationError{Action: "view bookings for this ride"}
	}

	bookings, err := s.bookingRepo.ListByRide(ctx, rideID)
	if err != nil {
		return nil, translate(err, "booking")
	}
	return bookings, nil
}

func (s *BookingService) invalidate(ctx context.Context, ride *domain.Ride) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ride.ID, ride.Version); err != nil {
		s.log.WithError(err).WithField("ride_id", ride.ID).Warn("failed to invalidate ride cache")
	}
}

func (s *BookingService) transitioned(actor domain.Actor, ride *domain.Ride, booking *domain.Booking) {
	s.log.WithFields(logrus.Fields{
		"ride_id":         ride.ID,
		"booking_id":      booking.ID,
		"actor_id":        actor.ID,
		"status":          booking.Status,
		"remaining_seats": ride.RemainingSeats,
	}).Info("booking status changed")
}

func (s *BookingService) rejected(op string, actor domain.Actor, rideID, bookingID uuid.UUID, err error) {
	fields := logrus.Fields{"actor_id": actor.ID, "op": op}
	if rideID != uuid.Nil {
		fields["ride_id"] = rideID
	}
	if bookingID != uuid.Nil {
		fields["booking_id"] = bookingID
	}
	s.log.WithFields(fields).WithError(err).Debug("operation rejected")
}
