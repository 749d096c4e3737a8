package memory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/ports"
)

type RideRepository struct {
	store *Store
}

func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ride.CheckInvariant(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.rides[ride.ID]; exists {
		return domain.ConflictError{Resource: "ride", Msg: "duplicate id"}
	}

	now := r.store.now()
	ride.Version = 1
	ride.CreatedAt = now
	ride.UpdatedAt = now
	r.store.rides[ride.ID] = cloneRide(*ride)

	return nil
}

func (r *RideRepository) GetByID(ctx context.Context, rideID uuid.UUID) (*domain.Ride, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ride, ok := r.store.rides[rideID]
	if !ok {
		return nil, domain.ErrRideNotFound
	}

	out := cloneRide(ride)
	return &out, nil
}

func (r *RideRepository) Search(ctx context.Context, filter domain.RideFilter) ([]domain.Ride, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rides []domain.Ride
	for _, ride := range r.store.rides {
		if filter.Matches(ride) {
			rides = append(rides, cloneRide(ride))
		}
	}
	sortRidesByStart(rides)

	return rides, nil
}

func (r *RideRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Ride, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rides []domain.Ride
	for _, ride := range r.store.rides {
		if ride.DriverID == driverID {
			rides = append(rides, cloneRide(ride))
		}
	}
	sortRidesByStart(rides)

	return rides, nil
}

func (r *RideRepository) Update(ctx context.Context, rideID uuid.UUID, fn ports.RideMutation) (*domain.Ride, error) {
	lock := r.store.rideLock(rideID)
	lock.Lock()
	defer lock.Unlock()

	current, err := r.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	working := cloneRide(*current)
	if err := fn(&working); err != nil {
		if errors.Is(err, ports.ErrSkipWrite) {
			return current, nil
		}
		return nil, err
	}
	if err := working.CheckInvariant(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.rides[rideID].Version != current.Version {
		return nil, ports.ErrVersionConflict
	}
	working.Version = current.Version + 1
	working.UpdatedAt = r.store.now()
	r.store.rides[rideID] = cloneRide(working)

	return &working, nil
}
