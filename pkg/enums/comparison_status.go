package enums

import "fmt"

// ComparisonStatus maps to the comparison_status enum in Postgres.
type ComparisonStatus string

const (
	ComparisonGenerating ComparisonStatus = "generating"
	ComparisonReady      ComparisonStatus = "ready"
	ComparisonSelected   ComparisonStatus = "selected"
	ComparisonExpired    ComparisonStatus = "expired"
	ComparisonFailed     ComparisonStatus = "failed"
)

var validComparisonStatuses = []ComparisonStatus{
	ComparisonGenerating,
	ComparisonReady,
	ComparisonSelected,
	ComparisonExpired,
	ComparisonFailed,
}

// String implements fmt.Stringer.
func (s ComparisonStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s ComparisonStatus) IsValid() bool {
	for _, candidate := range validComparisonStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the comparison can never change again.
func (s ComparisonStatus) IsTerminal() bool {
	return s == ComparisonSelected || s == ComparisonExpired || s == ComparisonFailed
}

// ParseComparisonStatus converts a raw string into a ComparisonStatus.
func ParseComparisonStatus(value string) (ComparisonStatus, error) {
	for _, candidate := range validComparisonStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid comparison status %q", value)
}
