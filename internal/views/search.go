// Package views computes the filtered, sorted and aggregated subsets shown
// by the CLI. Every function is pure and leaves its input slices untouched.
package views

import (
	"math"
	"strings"
)

// matches reports whether the lower-cased query q occurs in any field.
// An empty query matches everything.
func matches(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func normQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// percent returns part/total as a whole percentage, 0 when total is 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
