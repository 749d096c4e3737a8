package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingAccepted, BookingRejected, BookingCancelled},
	BookingAccepted: {BookingCancelled},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// Booking holds a passenger's claim on a ride. Its seats count against the
// ride's inventory only while the booking is accepted.
type Booking struct {
	ID             uuid.UUID
	RideID         uuid.UUID
	PassengerID    uuid.UUID
	RequestedSeats int
	Status         BookingStatus
	Notes          string
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.PassengerID == userID
}

func (b *Booking) Accept() error {
	return b.transition(BookingAccepted, "accept")
}

func (b *Booking) Reject() error {
	return b.transition(BookingRejected, "reject")
}

// Cancel returns the status the booking had before cancellation.
func (b *Booking) Cancel() (BookingStatus, error) {
	prior := b.Status
	if err := b.transition(BookingCancelled, "cancel"); err != nil {
		return prior, err
	}
	return prior, nil
}

func (b *Booking) transition(next BookingStatus, verb string) error {
	if !b.Status.CanTransitionTo(next) {
		return ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot %s booking in status %s", verb, b.Status),
		}
	}
	b.Status = next
	return nil
}

type BookingEvent struct {
	BookingID uuid.UUID     `json:"bookingId"`
	RideID    uuid.UUID     `json:"rideId"`
	NewStatus BookingStatus `json:"newStatus"`
}
