// Package strings holds small string slice helpers.
package strings

import "strings"

// DedupeAndTrim trims each value and drops empty and repeated ones,
// keeping first-seen order. A nil or empty input yields nil.
func DedupeAndTrim(values []string) []string {
	var out []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// SplitList splits a comma separated value and applies DedupeAndTrim.
func SplitList(raw string) []string {
	return DedupeAndTrim(strings.Split(raw, ","))
}
