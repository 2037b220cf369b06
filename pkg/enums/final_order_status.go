package enums

import "fmt"

// FinalOrderStatus tracks a dispatch snapshot from creation to completion.
type FinalOrderStatus string

const (
	FinalOrderStatusDispatchReady FinalOrderStatus = "dispatch_ready"
	FinalOrderStatusInTransit     FinalOrderStatus = "in_transit"
	FinalOrderStatusCompleted     FinalOrderStatus = "completed"
)

var validFinalOrderStatuses = []FinalOrderStatus{
	FinalOrderStatusDispatchReady,
	FinalOrderStatusInTransit,
	FinalOrderStatusCompleted,
}

// String implements fmt.Stringer.
func (f FinalOrderStatus) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FinalOrderStatus.
func (f FinalOrderStatus) IsValid() bool {
	for _, candidate := range validFinalOrderStatuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFinalOrderStatus converts raw input into a FinalOrderStatus.
func ParseFinalOrderStatus(value string) (FinalOrderStatus, error) {
	for _, candidate := range validFinalOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid final order status %q", value)
}
