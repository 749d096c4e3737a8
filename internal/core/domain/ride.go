package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RideStatus string

const (
	RideOpen      RideStatus = "open"
	RideFull      RideStatus = "full"
	RideCancelled RideStatus = "cancelled"
)

type Location struct {
	Text string   `json:"text"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

// Ride is the seat ledger of one published offer. RemainingSeats and Status
// only change through Reserve, Release and Cancel.
type Ride struct {
	ID             uuid.UUID
	DriverID       uuid.UUID
	Origin         Location
	Destination    Location
	Waypoints      []Location
	StartsAt       time.Time
	TotalSeats     int
	RemainingSeats int
	PricePerSeat   float64
	Status         RideStatus
	Notes          string
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r *Ride) IsOwnedBy(userID uuid.UUID) bool {
	return r.DriverID == userID
}

func (r *Ride) IsOpen() bool {
	return r.Status == RideOpen
}

func (r *Ride) IsCancelled() bool {
	return r.Status == RideCancelled
}

func (r *Ride) BookedSeats() int {
	return r.TotalSeats - r.RemainingSeats
}

// Reserve takes seats out of inventory for an accepted booking.
func (r *Ride) Reserve(seats int) error {
	if seats < 1 {
		return ValidationError{Field: "requested_seats", Msg: "must be at least 1"}
	}
	if r.Status != RideOpen {
		return ConflictError{Resource: "ride", Msg: fmt.Sprintf("ride is %s", r.Status)}
	}
	if seats > r.RemainingSeats {
		return ConflictError{
			Resource: "ride",
			Msg:      fmt.Sprintf("insufficient seats: needs %d, has %d", seats, r.RemainingSeats),
		}
	}

	r.RemainingSeats -= seats
	if r.RemainingSeats == 0 {
		r.Status = RideFull
	}
	return nil
}

// Release gives seats of a cancelled accepted booking back. A cancelled ride
// keeps its inventory frozen.
func (r *Ride) Release(seats int) error {
	if r.Status == RideCancelled {
		return nil
	}
	if seats < 1 || r.RemainingSeats+seats > r.TotalSeats {
		return InternalError{Msg: fmt.Sprintf("release of %d seats would exceed capacity %d (remaining %d)", seats, r.TotalSeats, r.RemainingSeats)}
	}

	r.RemainingSeats += seats
	if r.Status == RideFull {
		r.Status = RideOpen
	}
	return nil
}

// Cancel moves the ride to its terminal state. It reports false when the ride
// was already cancelled.
func (r *Ride) Cancel() bool {
	if r.Status == RideCancelled {
		return false
	}
	r.Status = RideCancelled
	return true
}

func (r *Ride) CheckInvariant() error {
	if r.TotalSeats < 1 {
		return InternalError{Msg: fmt.Sprintf("ride %s: total seats %d", r.ID, r.TotalSeats)}
	}
	if r.RemainingSeats < 0 || r.RemainingSeats > r.TotalSeats {
		return InternalError{Msg: fmt.Sprintf("ride %s: remaining seats %d out of [0,%d]", r.ID, r.RemainingSeats, r.TotalSeats)}
	}
	switch r.Status {
	case RideCancelled:
	case RideFull:
		if r.RemainingSeats != 0 {
			return InternalError{Msg: fmt.Sprintf("ride %s: full with %d seats remaining", r.ID, r.RemainingSeats)}
		}
	case RideOpen:
		if r.RemainingSeats == 0 {
			return InternalError{Msg: fmt.Sprintf("ride %s: open with no seats remaining", r.ID)}
		}
	default:
		return InternalError{Msg: fmt.Sprintf("ride %s: unknown status %q", r.ID, r.Status)}
	}
	return nil
}
