package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/ports"
)

// RideService answers discovery queries. It never writes inventory.
type RideService struct {
	rideRepo ports.RideRepository
	cache    ports.RideCache
	log      *logrus.Logger
}

func NewRideService(rideRepo ports.RideRepository, cache ports.RideCache, log *logrus.Logger) *RideService {
	return &RideService{rideRepo: rideRepo, cache: cache, log: log}
}

func (s *RideService) Search(ctx context.Context, filter domain.RideFilter) ([]domain.Ride, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.Search(ctx, filter)
	if err != nil {
		return nil, translate(err, "ride")
	}
	return rides, nil
}

func (s *RideService) GetRide(ctx context.Context, rideID uuid.UUID) (*domain.Ride, error) {
	if s.cache != nil {
		ride, err := s.cache.Get(ctx, rideID)
		if err == nil {
			return ride, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			s.log.WithError(err).WithField("ride_id", rideID).Warn("ride cache read failed")
		}
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, translate(err, "ride")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ride); err != nil {
			s.log.WithError(err).WithField("ride_id", rideID).Warn("ride cache write failed")
		}
	}

	return ride, nil
}

func (s *RideService) ListDriverRides(ctx context.Context, actor domain.Actor) ([]domain.Ride, error) {
	if actor.Role != domain.RoleDriver {
		return nil, domain.AuthorizationError{Msg: "only drivers can view their rides"}
	}

	rides, err := s.rideRepo.ListByDriver(ctx, actor.ID)
	if err != nil {
		return nil, translate(err, "ride")
	}
	return rides, nil
}
