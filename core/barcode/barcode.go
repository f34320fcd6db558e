package barcode

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidFormat is returned when a raw barcode does not match the item pattern.
// Its message is meant to be shown to the operator as-is.
var ErrInvalidFormat = errors.New("Invalid: Format must be T + 5 digits (e.g., T12345)")

var pattern = regexp.MustCompile(`^[tT][0-9]{5}$`)

// Normalize trims surrounding whitespace. Letter case is kept.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// IsValid reports whether raw is a well-formed item barcode.
func IsValid(raw string) bool {
	return pattern.MatchString(Normalize(raw))
}

// Validate returns the normalized barcode or ErrInvalidFormat.
func Validate(raw string) (string, error) {
	code := Normalize(raw)
	if !pattern.MatchString(code) {
		return "", ErrInvalidFormat
	}
	return code, nil
}
