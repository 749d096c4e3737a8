package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
)

type RideResponse struct {
	ID             uuid.UUID         `json:"id"`
	DriverID       uuid.UUID         `json:"driverId"`
	Origin         domain.Location   `json:"startLocation"`
	Destination    domain.Location   `json:"endLocation"`
	Waypoints      []domain.Location `json:"waypoints"`
	StartsAt       time.Time         `json:"startDateTime"`
	TotalSeats     int               `json:"totalSeats"`
	RemainingSeats int               `json:"remainingSeats"`
	PricePerSeat   float64           `json:"pricePerSeat"`
	Status         domain.RideStatus `json:"status"`
	Notes          string            `json:"notes,omitempty"`
	Version        int               `json:"version"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type BookingResponse struct {
	ID             uuid.UUID            `json:"id"`
	RideID         uuid.UUID            `json:"rideId"`
	PassengerID    uuid.UUID            `json:"passengerId"`
	RequestedSeats int                  `json:"requestedSeats"`
	Status         domain.BookingStatus `json:"status"`
	Notes          string               `json:"notes,omitempty"`
	Version        int                  `json:"version"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// TransitionResponse is returned by accept, reject and cancel so callers see
// the ride inventory the transition produced.
type TransitionResponse struct {
	Booking BookingResponse `json:"booking"`
	Ride    RideResponse    `json:"ride"`
}

func newRideResponse(r *domain.Ride) RideResponse {
	waypoints := r.Waypoints
	if waypoints == nil {
		waypoints = []domain.Location{}
	}
	return RideResponse{
		ID:             r.ID,
		DriverID:       r.DriverID,
		Origin:         r.Origin,
		Destination:    r.Destination,
		Waypoints:      waypoints,
		StartsAt:       r.StartsAt,
		TotalSeats:     r.TotalSeats,
		RemainingSeats: r.RemainingSeats,
		PricePerSeat:   r.PricePerSeat,
		Status:         r.Status,
		Notes:          r.Notes,
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func newRideResponses(rides []domain.Ride) []RideResponse {
	out := make([]RideResponse, 0, len(rides))
	for i := range rides {
		out = append(out, newRideResponse(&rides[i]))
	}
	return out
}

func newBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		RideID:         b.RideID,
		PassengerID:    b.PassengerID,
		RequestedSeats: b.RequestedSeats,
		Status:         b.Status,
		Notes:          b.Notes,
		Version:        b.Version,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func newBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, newBookingResponse(&bookings[i]))
	}
	return out
}
