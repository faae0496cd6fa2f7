package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time in canonical 24-hour "HH:MM" form.
// Values produced by ParseTimeOfDay are always canonical, so stored
// availability never needs defensive re-parsing downstream.
type TimeOfDay string

func (t TimeOfDay) String() string { return string(t) }

// ParseTimeOfDay validates and normalizes a time-of-day string.
// Single-digit hours are zero-padded ("9:00" -> "09:00").
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(parsed.Format("15:04")), nil
}

// ParseTimeList parses a comma-separated list of times as entered in the
// availability editor. Whitespace is trimmed and empty entries dropped;
// any remaining malformed entry fails the whole list.
func ParseTimeList(raw string) ([]TimeOfDay, error) {
	var times []TimeOfDay
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := ParseTimeOfDay(part)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}

// AvailabilityMap is a provider's recurring weekly schedule: weekday to
// the ordered list of open times. An absent weekday means no availability
// that day. Stored as a JSONB column keyed by weekday name.
type AvailabilityMap map[Weekday][]TimeOfDay

// Times returns the stored list for a weekday, empty when absent.
// Stored order is preserved.
func (m AvailabilityMap) Times(day Weekday) []TimeOfDay {
	if m == nil {
		return nil
	}
	return m[day]
}

// Normalize re-parses every entry, returning a map whose values are all
// canonical HH:MM. Unknown weekday keys or malformed times are rejected.
func (m AvailabilityMap) Normalize() (AvailabilityMap, error) {
	out := make(AvailabilityMap, len(m))
	for day, times := range m {
		if !day.Valid() {
			return nil, fmt.Errorf("invalid weekday key: %d", int(day))
		}
		normalized := make([]TimeOfDay, 0, len(times))
		for _, t := range times {
			parsed, err := ParseTimeOfDay(string(t))
			if err != nil {
				return nil, err
			}
			normalized = append(normalized, parsed)
		}
		out[day] = normalized
	}
	return out, nil
}

func (m AvailabilityMap) Value() (driver.Value, error) {
	if m == nil {
		m = AvailabilityMap{}
	}
	return json.Marshal(m)
}

func (m *AvailabilityMap) Scan(src interface{}) error {
	if src == nil {
		*m = AvailabilityMap{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AvailabilityMap", src)
	}
	return json.Unmarshal(data, m)
}
