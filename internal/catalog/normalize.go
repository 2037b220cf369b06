package catalog

import "strings"

// Normalize collapses interior whitespace and lowercases so lookups keyed on
// the result treat "ACME  Traders" and "acme traders" as the same entity.
func Normalize(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}
