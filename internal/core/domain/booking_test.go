package domain_test

import (
	"testing"

	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to domain.BookingStatus
		ok       bool
	}{
		{domain.BookingPending, domain.BookingAccepted, true},
		{domain.BookingPending, domain.BookingRejected, true},
		{domain.BookingPending, domain.BookingCancelled, true},
		{domain.BookingAccepted, domain.BookingCancelled, true},
		{domain.BookingAccepted, domain.BookingRejected, false},
		{domain.BookingAccepted, domain.BookingPending, false},
		{domain.BookingRejected, domain.BookingCancelled, false},
		{domain.BookingCancelled, domain.BookingAccepted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, domain.BookingRejected.IsTerminal())
	assert.True(t, domain.BookingCancelled.IsTerminal())
	assert.False(t, domain.BookingAccepted.IsTerminal())
}

func TestBookingCancel_ReturnsPriorStatus(t *testing.T) {
	b := &domain.Booking{Status: domain.BookingAccepted}

	prior, err := b.Cancel()

	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, prior)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestBookingReject_OnlyFromPending(t *testing.T) {
	b := &domain.Booking{Status: domain.BookingAccepted}

	err := b.Reject()

	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, domain.BookingAccepted, b.Status)
}

func TestBookingCancel_TerminalFails(t *testing.T) {
	b := &domain.Booking{Status: domain.BookingRejected}

	_, err := b.Cancel()

	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, domain.BookingRejected, b.Status)
}
