// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email trims surrounding whitespace and lowercases an email address.
// Storage and lookups always go through this so the unique email index
// is case-insensitive in practice.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username trims surrounding whitespace. Case is preserved for display;
// lookups use the folded username_ci field instead.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Name trims and collapses internal runs of whitespace in a display name.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
