package domain

import "github.com/google/uuid"

type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePassenger, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller, resolved by the transport layer.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type DriverProfile struct {
	UserID        uuid.UUID
	VehicleModel  string
	VehicleNumber string
	VehicleSeats  int
	Verified      bool
}
