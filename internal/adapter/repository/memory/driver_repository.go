package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
)

type DriverRepository struct {
	store *Store
}

func (r *DriverRepository) Put(profile domain.DriverProfile) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.drivers[profile.UserID] = profile
}

func (r *DriverRepository) GetDriverProfile(ctx context.Context, userID uuid.UUID) (*domain.DriverProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	profile, ok := r.store.drivers[userID]
	if !ok {
		return nil, domain.ErrDriverNotFound
	}
	return &profile, nil
}
