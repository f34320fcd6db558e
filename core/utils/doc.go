// Package utils holds small parsing helpers for spreadsheet values that
// arrive as loosely formatted text.
package utils
