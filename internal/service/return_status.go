package service

import "github.com/1983adrian/adimarketplace-sub002/internal/constants"

// allowedReturnTransitions enumerates every legal status move.
// Anything absent here is rejected.
var allowedReturnTransitions = map[string]map[string]bool{
	constants.ReturnStatusPending: {
		constants.ReturnStatusApproved:         true,
		constants.ReturnStatusRejected:         true,
		constants.ReturnStatusRefundedNoReturn: true,
		constants.ReturnStatusCancelled:        true,
	},
	constants.ReturnStatusApproved: {
		constants.ReturnStatusCompleted: true,
		constants.ReturnStatusCancelled: true,
	},
}

// CanTransitionReturn reports whether a return may move between two statuses.
func CanTransitionReturn(from, to string) bool {
	targets, ok := allowedReturnTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// IsTerminalReturnStatus reports whether a status admits no further moves.
func IsTerminalReturnStatus(status string) bool {
	targets, ok := allowedReturnTransitions[status]
	return !ok || len(targets) == 0
}
