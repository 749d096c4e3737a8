// Package memory is a single-node store. Mutations of one ride are serialized
// by a per-ride mutex; rides never block each other.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
)

type Store struct {
	mu       sync.RWMutex
	rides    map[uuid.UUID]domain.Ride
	bookings map[uuid.UUID]domain.Booking
	drivers  map[uuid.UUID]domain.DriverProfile

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		rides:    make(map[uuid.UUID]domain.Ride),
		bookings: make(map[uuid.UUID]domain.Booking),
		drivers:  make(map[uuid.UUID]domain.DriverProfile),
		locks:    make(map[uuid.UUID]*sync.Mutex),
		now:      time.Now,
	}
}

func (s *Store) Rides() *RideRepository {
	return &RideRepository{store: s}
}

func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

func (s *Store) Drivers() *DriverRepository {
	return &DriverRepository{store: s}
}

func (s *Store) rideLock(rideID uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[rideID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[rideID] = lock
	}
	return lock
}

func cloneRide(r domain.Ride) domain.Ride {
	r.Origin = cloneLocation(r.Origin)
	r.Destination = cloneLocation(r.Destination)
	if r.Waypoints != nil {
		waypoints := make([]domain.Location, len(r.Waypoints))
		for i, w := range r.Waypoints {
			waypoints[i] = cloneLocation(w)
		}
		r.Waypoints = waypoints
	}
	return r
}

func cloneLocation(l domain.Location) domain.Location {
	if l.Lat != nil {
		lat := *l.Lat
		l.Lat = &lat
	}
	if l.Lng != nil {
		lng := *l.Lng
		l.Lng = &lng
	}
	return l
}

func sortRidesByStart(rides []domain.Ride) {
	sort.SliceStable(rides, func(i, j int) bool {
		return rides[i].StartsAt.Before(rides[j].StartsAt)
	})
}
