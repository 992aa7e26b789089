package util

import (
	"strconv"
	"strings"
)

// ToInt safely converts a JSON-decoded argument to int.
// Handles float64 (the encoding/json default), int, int64 and numeric strings.
// Returns def for nil or unsupported types.
func ToInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return def
		}
		return i
	default:
		return def
	}
}

// ToString returns v when it is a string, otherwise "".
func ToString(v any) string {
	s, _ := v.(string)
	return s
}
