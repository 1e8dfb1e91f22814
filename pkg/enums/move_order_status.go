package enums

import "fmt"

// MoveOrderStatus maps to the move_order_status enum in Postgres.
type MoveOrderStatus string

const (
	OrderDraft         MoveOrderStatus = "draft"
	OrderSubmitted     MoveOrderStatus = "submitted"
	OrderComparing     MoveOrderStatus = "comparing"
	OrderMoverSelected MoveOrderStatus = "mover_selected"
	OrderScheduled     MoveOrderStatus = "scheduled"
	OrderInProgress    MoveOrderStatus = "in_progress"
	OrderCompleted     MoveOrderStatus = "completed"
	OrderCancelled     MoveOrderStatus = "cancelled"
)

var validMoveOrderStatuses = []MoveOrderStatus{
	OrderDraft,
	OrderSubmitted,
	OrderComparing,
	OrderMoverSelected,
	OrderScheduled,
	OrderInProgress,
	OrderCompleted,
	OrderCancelled,
}

// String implements fmt.Stringer.
func (s MoveOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s MoveOrderStatus) IsValid() bool {
	for _, candidate := range validMoveOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// AllowsComparison reports whether a comparison may be generated for the order.
func (s MoveOrderStatus) AllowsComparison() bool {
	switch s {
	case OrderSubmitted, OrderComparing:
		return true
	default:
		return false
	}
}

// ParseMoveOrderStatus converts a raw string into a MoveOrderStatus.
func ParseMoveOrderStatus(value string) (MoveOrderStatus, error) {
	for _, candidate := range validMoveOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid move order status %q", value)
}
