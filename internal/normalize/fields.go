package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// object returns raw as a JSON object, or an empty object for anything else
// (null, arrays, scalars).
func object(raw any) map[string]any {
	if m, ok := raw.(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}

// str returns the first string-valued key of m.
func str(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			return s, true
		}
	}
	return "", false
}

func strOr(m map[string]any, def string, keys ...string) string {
	if s, ok := str(m, keys...); ok {
		return s
	}
	return def
}

// nonEmpty returns the first key holding a non-blank string, trimmed.
func nonEmpty(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// number accepts JSON numbers and numeric strings. NaN and infinities are
// rejected.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func numberOr(m map[string]any, def float64, keys ...string) float64 {
	for _, k := range keys {
		if f, ok := number(m[k]); ok {
			return f
		}
	}
	return def
}

func boolOr(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// stringList keeps the string elements of a JSON array. The result is never nil.
func stringList(v any) []string {
	arr, _ := v.([]any)
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func list(v any) []any {
	arr, _ := v.([]any)
	return arr
}
