package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// RideCache holds ride snapshots. Invalidate takes the version just
// committed; snapshots older than it are refused by later Set calls.
type RideCache interface {
	Get(ctx context.Context, rideID uuid.UUID) (*domain.Ride, error)
	Set(ctx context.Context, ride *domain.Ride) error
	Invalidate(ctx context.Context, rideID uuid.UUID, version int) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}
