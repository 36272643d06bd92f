// Package sanitizer normalizes user-supplied values before they reach storage.
package sanitizer

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases the address so
// that lookups by email are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
