package memory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/adapter/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverRepository_Seed(t *testing.T) {
	store := memory.NewStore()
	id := uuid.New()

	n, err := store.Drivers().Seed(strings.NewReader(`[
		{"userId": "` + id.String() + `", "vehicleModel": "Swift", "vehicleSeats": 4, "verified": true}
	]`))

	require.NoError(t, err)
	assert.Equal(t, 1, n)

	profile, err := store.Drivers().GetDriverProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 4, profile.VehicleSeats)
	assert.True(t, profile.Verified)
	assert.Equal(t, "Swift", profile.VehicleModel)
}

func TestDriverRepository_SeedRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"missing id":    `[{"vehicleSeats": 4}]`,
		"no seats":      `[{"userId": "` + uuid.NewString() + `"}]`,
		"object at top": `{"userId": "` + uuid.NewString() + `"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			store := memory.NewStore()

			_, err := store.Drivers().Seed(strings.NewReader(body))

			assert.Error(t, err)
		})
	}
}
