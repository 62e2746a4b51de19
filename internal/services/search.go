package services

import "regexp"

// nonAlphanumeric matches every character outside the search allow-list
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeSearchText reduces raw search input to a safe matching token by
// stripping everything that is not an ASCII letter or digit. The result of
// sanitizing an already sanitized string is the string itself. An empty result
// means the caller must return zero matches rather than match everything.
func SanitizeSearchText(raw string) string {
	return nonAlphanumeric.ReplaceAllString(raw, "")
}
