package utils_test

import (
	"testing"

	"stock-matcher/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"Plain", "12", 12},
		{"Padded", "  4 ", 4},
		{"LeadingDigits", "12 pairs", 12},
		{"Decimal", "5.0", 5},
		{"ExplicitPlus", "+7", 7},
		{"Negative", "-3", 0},
		{"Garbage", "abc", 0},
		{"Empty", "", 0},
		{"SignOnly", "-", 0},
		{"Overflow", "99999999999999999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.ParseQuantity(tt.in))
		})
	}
}
