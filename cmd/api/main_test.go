package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/services"
	"github.com/srgjo27/carpool_booking/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestOpenRepositories_MemorySeededDriverCanPublish(t *testing.T) {
	driverID := uuid.New()
	path := filepath.Join(t.TempDir(), "drivers.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"userId": "`+driverID.String()+`", "vehicleSeats": 4, "verified": true}]`), 0o600))

	log := quietLogger()
	ctx := context.Background()
	repos, err := openRepositories(ctx, config.Config{Store: config.StoreMemory, DriverProfilesFile: path}, log)
	require.NoError(t, err)
	assert.Nil(t, repos.db)

	svc := services.NewBookingService(repos.rides, repos.bookings, repos.drivers, nil, log)
	ride, err := svc.PublishRide(ctx, domain.Actor{ID: driverID, Role: domain.RoleDriver}, services.PublishRideRequest{
		Origin:      domain.Location{Text: "Indiranagar"},
		Destination: domain.Location{Text: "Airport"},
		StartsAt:    time.Now().Add(time.Hour),
		TotalSeats:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, ride.RemainingSeats)
}

func TestOpenRepositories_MemoryWithoutProfiles(t *testing.T) {
	repos, err := openRepositories(context.Background(), config.Config{Store: config.StoreMemory}, quietLogger())

	require.NoError(t, err)
	_, err = repos.drivers.GetDriverProfile(context.Background(), uuid.New())
	assert.True(t, domain.IsNotFound(err))
}

func TestOpenRepositories_BadProfilesFile(t *testing.T) {
	cfg := config.Config{Store: config.StoreMemory, DriverProfilesFile: filepath.Join(t.TempDir(), "missing.json")}

	_, err := openRepositories(context.Background(), cfg, quietLogger())

	assert.ErrorContains(t, err, "open driver profiles")
}
