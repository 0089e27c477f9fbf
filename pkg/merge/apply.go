// Package merge implements field-level merging of canonical records. The
// primitives write a value only when it differs from what the destination
// already holds and report whether a mutation occurred, so a merge run twice
// with unchanged inputs is a no-op the second time.
package merge

import (
	"strings"
	"time"
)

// Apply assigns value to target when they differ under value equality and
// reports whether a write happened.
func Apply[T comparable](target *T, value T) bool {
	if *target == value {
		return false
	}
	*target = value
	return true
}

// ApplyString is Apply for strings with one extra rule: a blank current
// value and a blank new value are considered equal, so stores that represent
// "no value" differently do not produce spurious change flags.
func ApplyString(target *string, value string) bool {
	if *target == value {
		return false
	}
	if strings.TrimSpace(*target) == "" && strings.TrimSpace(value) == "" {
		return false
	}
	*target = value
	return true
}

// ApplyTime assigns value to target when the instants differ.
func ApplyTime(target *time.Time, value time.Time) bool {
	if target.Equal(value) {
		return false
	}
	*target = value
	return true
}
