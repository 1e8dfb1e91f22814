package enums

import "fmt"

// ComparisonEntryStatus maps to the comparison_entry_status enum in Postgres.
type ComparisonEntryStatus string

const (
	EntryCalculated ComparisonEntryStatus = "calculated"
	EntrySelected   ComparisonEntryStatus = "selected"
	EntryRejected   ComparisonEntryStatus = "rejected"
)

var validComparisonEntryStatuses = []ComparisonEntryStatus{
	EntryCalculated,
	EntrySelected,
	EntryRejected,
}

// String implements fmt.Stringer.
func (s ComparisonEntryStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s ComparisonEntryStatus) IsValid() bool {
	for _, candidate := range validComparisonEntryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseComparisonEntryStatus converts a raw string into a ComparisonEntryStatus.
func ParseComparisonEntryStatus(value string) (ComparisonEntryStatus, error) {
	for _, candidate := range validComparisonEntryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid comparison entry status %q", value)
}
