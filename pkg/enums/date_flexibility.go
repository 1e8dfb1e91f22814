package enums

import "fmt"

// DateFlexibility maps to the date_flexibility enum in Postgres.
type DateFlexibility string

const (
	DateExact    DateFlexibility = "exact"
	DateFlexible DateFlexibility = "flexible"
	DateRange    DateFlexibility = "range"
)

var validDateFlexibilities = []DateFlexibility{
	DateExact,
	DateFlexible,
	DateRange,
}

// String implements fmt.Stringer.
func (d DateFlexibility) String() string {
	return string(d)
}

// IsValid reports whether the flexibility is recognized.
func (d DateFlexibility) IsValid() bool {
	for _, candidate := range validDateFlexibilities {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDateFlexibility converts a raw string into a DateFlexibility.
func ParseDateFlexibility(value string) (DateFlexibility, error) {
	for _, candidate := range validDateFlexibilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid date flexibility %q", value)
}
