// Package shared holds value rules used by more than one aggregate.
package shared

import (
	"regexp"
	"strings"
)

const (
	PlateMinLength = 2
	PlateMaxLength = 12
)

var platePattern = regexp.MustCompile(`^[A-Z0-9-]+$`)

// NormalizePlate upper-cases a licence plate and strips whitespace. Tickets,
// subscription plates and request validation all compare this form.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.Fields(plate), ""))
}

// IsValidPlate reports whether the normalized plate has PlateMinLength to
// PlateMaxLength letters, digits or dashes.
func IsValidPlate(plate string) bool {
	p := NormalizePlate(plate)
	return len(p) >= PlateMinLength && len(p) <= PlateMaxLength && platePattern.MatchString(p)
}
