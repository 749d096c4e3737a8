package memory

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
)

type driverSeed struct {
	UserID        uuid.UUID `json:"userId"`
	VehicleModel  string    `json:"vehicleModel"`
	VehicleNumber string    `json:"vehicleNumber"`
	VehicleSeats  int       `json:"vehicleSeats"`
	Verified      bool      `json:"verified"`
}

// Seed loads driver profiles from a JSON array. The memory store has no
// users table, so this is how drivers exist at all.
func (r *DriverRepository) Seed(src io.Reader) (int, error) {
	var seeds []driverSeed
	if err := json.NewDecoder(src).Decode(&seeds); err != nil {
		return 0, fmt.Errorf("decode driver profiles: %w", err)
	}

	for i, s := range seeds {
		if s.UserID == uuid.Nil {
			return 0, fmt.Errorf("driver profile %d: userId is required", i)
		}
		if s.VehicleSeats < 1 {
			return 0, fmt.Errorf("driver profile %d: vehicleSeats must be at least 1", i)
		}
	}

	for _, s := range seeds {
		r.Put(domain.DriverProfile{
			UserID:        s.UserID,
			VehicleModel:  s.VehicleModel,
			VehicleNumber: s.VehicleNumber,
			VehicleSeats:  s.VehicleSeats,
			Verified:      s.Verified,
		})
	}
	return len(seeds), nil
}
