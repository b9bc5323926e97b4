package common

import "strings"

// Erase removes every occurrence of sub from s. Matching restarts from the
// beginning after each removal, so occurrences formed by joining the remaining
// pieces are removed as well ("aabb" minus "ab" is "").
func Erase(s, sub string) string {
	if sub == "" {
		return s
	}
	for {
		idx := strings.Index(s, sub)
		if idx < 0 {
			return s
		}
		s = s[:idx] + s[idx+len(sub):]
	}
}

// Replace substitutes every non-overlapping occurrence of from with to,
// scanning left to right. Replacement text is never rescanned.
func Replace(s, from, to string) string {
	if from == "" {
		return s
	}
	return strings.ReplaceAll(s, from, to)
}
