package utils

import (
	"strconv"
	"strings"
)

// ParseQuantity reads a spreadsheet quantity cell. Surrounding whitespace is
// ignored and the leading integer is used ("12 pairs" -> 12, "5.0" -> 5).
// Unparseable or negative values yield 0.
func ParseQuantity(s string) int {
	if i := leadingInt(s); i > 0 {
		return i
	}
	return 0
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	i, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return i
}
