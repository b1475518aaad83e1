package parser

import (
	"strconv"
	"strings"
)

// NormalizeValue trims a raw cell, returns nil for empty or whitespace-only
// input, and stores values that parse fully as numbers as float64.
func NormalizeValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return n
	}
	return trimmed
}
