package enums

import "fmt"

// OrderStatus tracks an order through the warehouse fulfillment pipeline.
type OrderStatus string

const (
	OrderStatusOpen               OrderStatus = "open"
	OrderStatusPicking            OrderStatus = "picking"
	OrderStatusPacking            OrderStatus = "packing"
	OrderStatusDispatchReady      OrderStatus = "dispatch_ready"
	OrderStatusPartiallyCompleted OrderStatus = "partially_completed"
	OrderStatusCompleted          OrderStatus = "completed"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusOpen,
	OrderStatusPicking,
	OrderStatusPacking,
	OrderStatusDispatchReady,
	OrderStatusPartiallyCompleted,
	OrderStatusCompleted,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusCompleted || o == OrderStatusPartiallyCompleted
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
