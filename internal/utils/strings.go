package utils

import (
	"strings"
)

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Match compares s against pattern, either exactly or as a case-insensitive
// substring when fuzzy is set.
func Match(s, pattern string, fuzzy bool) bool {
	if fuzzy {
		return ContainsFold(s, pattern)
	}
	return s == pattern
}
