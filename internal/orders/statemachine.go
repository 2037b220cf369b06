package orders

import "github.com/warelinehq/wareline-backend/pkg/enums"

// manualTransitions are the status changes allowed through the status update
// endpoint. Dispatch-ready and the terminal states are only reachable through
// the dispatch operations, which snapshot or settle the order as they move it.
var manualTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusOpen:    {enums.OrderStatusPicking},
	enums.OrderStatusPicking: {enums.OrderStatusPacking, enums.OrderStatusOpen},
	enums.OrderStatusPacking: {enums.OrderStatusPicking},
}

// CanTransition reports whether a manual move from one status to another is
// allowed.
func CanTransition(from, to enums.OrderStatus) bool {
	for _, next := range manualTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the manual moves available from the status.
func AllowedTransitions(from enums.OrderStatus) []enums.OrderStatus {
	return manualTransitions[from]
}
