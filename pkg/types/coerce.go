package types

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ParseNumber is the single coercion rule for numeric listing attributes:
// numbers pass through, strings are trimmed and parsed, anything else is 0.
func ParseNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func AsTag(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return formatNumber(ParseNumber(t))
	}
}

// AsTags flattens lists, grouped lists and comma separated strings into tags.
func AsTags(v any) []string {
	switch t := v.(type) {
	case []any:
		ret := make([]string, 0, len(t))
		for _, item := range t {
			if s := AsTag(item); s != "" {
				ret = append(ret, s)
			}
		}
		return ret
	case map[string]any:
		// grouped features, {"comfort": ["Heated seats"], ...}, flattened by group name
		ret := make([]string, 0)
		for _, group := range slices.Sorted(maps.Keys(t)) {
			ret = append(ret, AsTags(t[group])...)
		}
		return ret
	case string:
		ret := make([]string, 0)
		for _, part := range strings.Split(t, ",") {
			if s := strings.TrimSpace(part); s != "" {
				ret = append(ret, s)
			}
		}
		return ret
	}
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func digitsOf(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

func yearOf(s string) int {
	run := 0
	for i, r := range s {
		if r >= '0' && r <= '9' {
			run++
			if run == 4 {
				y, _ := strconv.Atoi(s[i-3 : i+1])
				if y >= 1900 && y <= 2100 {
					return y
				}
			}
			continue
		}
		run = 0
	}
	return 0
}

func joinNonEmpty(parts ...string) string {
	ret := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			ret = append(ret, p)
		}
	}
	return strings.Join(ret, " ")
}
