package database

import (
	"context"
	"database/sql"
	"fmt"
)

// The users table is owned by the account service; only the columns read
// for driver capability checks are declared here.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'passenger' CHECK (role IN ('passenger', 'driver', 'admin')),
		vehicle_model TEXT,
		vehicle_number TEXT,
		vehicle_seats INT,
		driver_verified BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS rides (
		id UUID PRIMARY KEY,
		driver_id UUID NOT NULL,
		origin_text TEXT NOT NULL,
		origin_lat DOUBLE PRECISION,
		origin_lng DOUBLE PRECISION,
		destination_text TEXT NOT NULL,
		destination_lat DOUBLE PRECISION,
		destination_lng DOUBLE PRECISION,
		waypoints JSONB,
		starts_at TIMESTAMPTZ NOT NULL,
		total_seats INT NOT NULL CHECK (total_seats > 0),
		remaining_seats INT NOT NULL CHECK (remaining_seats >= 0 AND remaining_seats <= total_seats),
		price_per_seat DOUBLE PRECISION NOT NULL CHECK (price_per_seat >= 0),
		status TEXT NOT NULL CHECK (status IN ('open', 'full', 'cancelled')),
		notes TEXT NOT NULL DEFAULT '',
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CHECK (status = 'cancelled' OR (status = 'full') = (remaining_seats = 0))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_search ON rides (status, starts_at)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_driver ON rides (driver_id)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY,
		ride_id UUID NOT NULL REFERENCES rides (id),
		passenger_id UUID NOT NULL,
		requested_seats INT NOT NULL CHECK (requested_seats > 0),
		status TEXT NOT NULL CHECK (status IN ('pending', 'accepted', 'rejected', 'cancelled')),
		notes TEXT NOT NULL DEFAULT '',
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_ride ON bookings (ride_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_passenger ON bookings (passenger_id)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
