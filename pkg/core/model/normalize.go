package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NormalizeActiveDays converts the wire encodings of a template's active
// days into the canonical weekday set. The column has accumulated four
// historical encodings: a native int list, a JSON-encoded list, a
// comma-separated string, and a {"weekday": bool} map.
func NormalizeActiveDays(raw any) (map[int]bool, error) {
	switch v := raw.(type) {
	case nil:
		return map[int]bool{}, nil
	case map[int]bool:
		return normalizeDaySet(keysOf(v))
	case []int:
		return normalizeDaySet(v)
	case []int32:
		days := make([]int, len(v))
		for i, d := range v {
			days[i] = int(d)
		}
		return normalizeDaySet(days)
	case []any:
		days := make([]int, 0, len(v))
		for _, item := range v {
			d, err := toWeekdayIndex(item)
			if err != nil {
				return nil, err
			}
			days = append(days, d)
		}
		return normalizeDaySet(days)
	case map[string]any:
		days := make([]int, 0, len(v))
		for key, enabled := range v {
			on, ok := enabled.(bool)
			if !ok {
				return nil, fmt.Errorf("active_days map value for %q is not a bool", key)
			}
			if !on {
				continue
			}
			d, err := toWeekdayIndex(key)
			if err != nil {
				return nil, err
			}
			days = append(days, d)
		}
		return normalizeDaySet(days)
	case string:
		return normalizeActiveDaysString(v)
	case []byte:
		return normalizeActiveDaysString(string(v))
	default:
		return nil, fmt.Errorf("unsupported active_days encoding %T", raw)
	}
}

func normalizeActiveDaysString(s string) (map[int]bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return map[int]bool{}, nil
	}

	// JSON list or JSON map first, then a plain comma-separated list.
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return nil, fmt.Errorf("active_days is not valid JSON: %w", err)
		}
		return NormalizeActiveDays(decoded)
	}

	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		d, err := toWeekdayIndex(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return normalizeDaySet(days)
}

func normalizeDaySet(days []int) (map[int]bool, error) {
	set := make(map[int]bool, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("weekday index %d out of range [0,6]", d)
		}
		set[d] = true
	}
	return set, nil
}

func toWeekdayIndex(v any) (int, error) {
	switch d := v.(type) {
	case int:
		return d, nil
	case float64:
		if d != float64(int(d)) {
			return 0, fmt.Errorf("weekday index %v is not an integer", d)
		}
		return int(d), nil
	case string:
		idx, err := strconv.Atoi(strings.TrimSpace(d))
		if err != nil {
			return 0, fmt.Errorf("weekday index %q is not an integer: %w", d, err)
		}
		return idx, nil
	default:
		return 0, fmt.Errorf("unsupported weekday index type %T", v)
	}
}

func keysOf(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k, on := range m {
		if on {
			keys = append(keys, k)
		}
	}
	return keys
}
