package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []ReservationStatus{
	ReservationStatusHold,
	ReservationStatusConfirmed,
	ReservationStatusCheckedIn,
	ReservationStatusCheckedOut,
	ReservationStatusCancelled,
}

func TestCanTransitionTo(t *testing.T) {
	allowed := map[ReservationStatus][]ReservationStatus{
		ReservationStatusHold:       {ReservationStatusConfirmed, ReservationStatusCancelled},
		ReservationStatusConfirmed:  {ReservationStatusCheckedIn, ReservationStatusCancelled},
		ReservationStatusCheckedIn:  {ReservationStatusCheckedOut},
		ReservationStatusCheckedOut: {},
		ReservationStatusCancelled:  {},
	}

	for from, targets := range allowed {
		permitted := make(map[ReservationStatus]bool, len(targets))
		for _, to := range targets {
			permitted[to] = true
		}
		for _, to := range allStatuses {
			assert.Equal(t, permitted[to], from.CanTransitionTo(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	for _, from := range []ReservationStatus{ReservationStatusCheckedOut, ReservationStatusCancelled} {
		assert.True(t, from.IsTerminal())
		for _, to := range allStatuses {
			assert.False(t, from.CanTransitionTo(to), "terminal %s must not reach %s", from, to)
		}
	}
}

func TestIsBlocking(t *testing.T) {
	assert.True(t, ReservationStatusHold.IsBlocking())
	assert.True(t, ReservationStatusConfirmed.IsBlocking())
	assert.True(t, ReservationStatusCheckedIn.IsBlocking())
	assert.False(t, ReservationStatusCheckedOut.IsBlocking())
	assert.False(t, ReservationStatusCancelled.IsBlocking())

	assert.Len(t, BlockingStatuses, 3)
	for _, s := range BlockingStatuses {
		assert.True(t, s.IsBlocking())
	}
}

func TestIsValidReservationStatus(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, IsValidReservationStatus(string(s)))
	}
	assert.False(t, IsValidReservationStatus("EXPIRED"))
	assert.False(t, IsValidReservationStatus("hold"))
	assert.False(t, IsValidReservationStatus(""))
}
