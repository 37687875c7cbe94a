package service

import (
	"testing"

	"github.com/1983adrian/adimarketplace-sub002/internal/constants"
)

func TestReturnTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{constants.ReturnStatusPending, constants.ReturnStatusApproved},
		{constants.ReturnStatusPending, constants.ReturnStatusRejected},
		{constants.ReturnStatusPending, constants.ReturnStatusRefundedNoReturn},
		{constants.ReturnStatusPending, constants.ReturnStatusCancelled},
		{constants.ReturnStatusApproved, constants.ReturnStatusCompleted},
		{constants.ReturnStatusApproved, constants.ReturnStatusCancelled},
	}
	for _, tc := range allowed {
		if !CanTransitionReturn(tc.from, tc.to) {
			t.Fatalf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to string }{
		{constants.ReturnStatusRejected, constants.ReturnStatusApproved},
		{constants.ReturnStatusCompleted, constants.ReturnStatusPending},
		{constants.ReturnStatusRefundedNoReturn, constants.ReturnStatusCompleted},
		{constants.ReturnStatusCancelled, constants.ReturnStatusPending},
		{constants.ReturnStatusApproved, constants.ReturnStatusRejected},
		{constants.ReturnStatusPending, constants.ReturnStatusCompleted},
	}
	for _, tc := range denied {
		if CanTransitionReturn(tc.from, tc.to) {
			t.Fatalf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	terminal := []string{
		constants.ReturnStatusCompleted,
		constants.ReturnStatusRejected,
		constants.ReturnStatusRefundedNoReturn,
		constants.ReturnStatusCancelled,
	}
	for _, status := range terminal {
		if !IsTerminalReturnStatus(status) {
			t.Fatalf("%s should be terminal", status)
		}
	}
	for _, status := range []string{constants.ReturnStatusPending, constants.ReturnStatusApproved} {
		if IsTerminalReturnStatus(status) {
			t.Fatalf("%s should not be terminal", status)
		}
	}
}
