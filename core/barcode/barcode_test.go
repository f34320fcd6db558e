package barcode_test

import (
	"testing"

	"stock-matcher/core/barcode"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Uppercase", "T12345", true},
		{"Lowercase", "t00001", true},
		{"PaddedWhitespace", " T12345 ", true},
		{"TooShort", "T1234", false},
		{"TooLong", "T123456", false},
		{"WrongLetter", "A12345", false},
		{"Empty", "", false},
		{"WhitespaceOnly", "   ", false},
		{"NonDigit", "T12a45", false},
		{"InnerSpace", "T12 345", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, barcode.IsValid(tt.input))
		})
	}
}

func TestValidate(t *testing.T) {
	code, err := barcode.Validate("  t54321\n")
	assert.NoError(t, err)
	assert.Equal(t, "t54321", code)

	code, err = barcode.Validate("X")
	assert.ErrorIs(t, err, barcode.ErrInvalidFormat)
	assert.Empty(t, code)
	assert.Contains(t, err.Error(), "T + 5 digits")
}
