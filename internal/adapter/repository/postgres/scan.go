package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/srgjo27/carpool_booking/internal/core/domain"
)

const rideColumns = `id, driver_id, origin_text, origin_lat, origin_lng, destination_text, destination_lat, destination_lng,
	waypoints, starts_at, total_seats, remaining_seats, price_per_seat, status, notes, version, created_at, updated_at`

const bookingColumns = `id, ride_id, passenger_id, requested_seats, status, notes, version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var originLat, originLng, destLat, destLng sql.NullFloat64
	var waypoints []byte

	err := row.Scan(
		&ride.ID,
		&ride.DriverID,
		&ride.Origin.Text,
		&originLat,
		&originLng,
		&ride.Destination.Text,
		&destLat,
		&destLng,
		&waypoints,
		&ride.StartsAt,
		&ride.TotalSeats,
		&ride.RemainingSeats,
		&ride.PricePerSeat,
		&ride.Status,
		&ride.Notes,
		&ride.Version,
		&ride.CreatedAt,
		&ride.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ride.Origin.Lat, ride.Origin.Lng = floatPtr(originLat), floatPtr(originLng)
	ride.Destination.Lat, ride.Destination.Lng = floatPtr(destLat), floatPtr(destLng)

	if len(waypoints) > 0 {
		if err := json.Unmarshal(waypoints, &ride.Waypoints); err != nil {
			return nil, fmt.Errorf("failed to decode waypoints of ride %s: %w", ride.ID, err)
		}
	}

	return &ride, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking

	err := row.Scan(
		&b.ID,
		&b.RideID,
		&b.PassengerID,
		&b.RequestedSeats,
		&b.Status,
		&b.Notes,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
