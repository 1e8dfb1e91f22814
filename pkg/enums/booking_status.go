package enums

import "fmt"

// BookingStatus maps to the booking_status enum in Postgres.
type BookingStatus string

const (
	BookingTentative  BookingStatus = "tentative"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

var validBookingStatuses = []BookingStatus{
	BookingTentative,
	BookingConfirmed,
	BookingInProgress,
	BookingCompleted,
	BookingCancelled,
}

// CapacityBookingStatuses are the statuses counted against a mover's daily capacity.
var CapacityBookingStatuses = []BookingStatus{
	BookingTentative,
	BookingConfirmed,
	BookingInProgress,
}

// String implements fmt.Stringer.
func (s BookingStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s BookingStatus) IsValid() bool {
	for _, candidate := range validBookingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CountsAgainstCapacity reports whether the booking consumes a slot for its day.
func (s BookingStatus) CountsAgainstCapacity() bool {
	for _, candidate := range CapacityBookingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseBookingStatus converts a raw string into a BookingStatus.
func ParseBookingStatus(value string) (BookingStatus, error) {
	for _, candidate := range validBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking status %q", value)
}
