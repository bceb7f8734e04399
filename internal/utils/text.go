package utils

import "strings"

// IsBlank reports whether s holds nothing but whitespace. Posted text is
// otherwise stored exactly as received.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
