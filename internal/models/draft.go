package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Draft carries the caller-supplied fields for creating or partially
// updating an Item. The loosely-typed fields accept whatever shape an
// upstream form hands over and are normalized by EnsureString / Count
// before they ever reach storage.
//
// For updates, nil fields (and an empty purchase date) mean "leave
// unchanged". ExpiryDate is loosely typed so an explicit empty string can
// clear a previously set expiry back to "not tracked".
type Draft struct {
	Name         any
	Category     any
	Icon         any
	CategoryIcon any
	Quantity     any
	Unit         any
	Threshold    any
	PurchaseDate string
	ExpiryDate   any
}

// EnsureString normalizes a loosely-typed display value to a plain string.
//
// Legacy-compatibility shim: an earlier persistence bug stored whole
// category/name option objects ({label, icon}) instead of their labels, so a
// map carrying a "label" or "name" key coerces to that key's value. Do not
// extend this beyond what already-persisted data requires.
func EnsureString(v any, fallback string) string {
	switch s := v.(type) {
	case nil:
		return fallback
	case string:
		if s == "" {
			return fallback
		}
		return s
	case map[string]any:
		if label, ok := s["label"].(string); ok && label != "" {
			return label
		}
		if name, ok := s["name"].(string); ok && name != "" {
			return name
		}
		return fallback
	default:
		return fmt.Sprint(v)
	}
}

// Count normalizes a loosely-typed count value to a non-negative integer.
// Non-numeric input yields 0; negatives clamp to 0.
func Count(v any) int {
	var n int
	switch q := v.(type) {
	case int:
		n = q
	case int64:
		n = int(q)
	case float64:
		n = int(q)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(q))
		if err == nil {
			n = parsed
		}
	}
	if n < 0 {
		return 0
	}
	return n
}
