package timeutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the length of a calendar day in minutes.
const MinutesPerDay = 24 * 60

// Clock is a time of day with minute precision, stored as minutes since
// midnight. The zero value is midnight.
type Clock int

// NewClock creates a Clock from an hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses a wall-clock string in "HH:MM" or "HH:MM:SS" form.
// Seconds are accepted on the wire but discarded.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock value %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock value %q: out of range", s)
	}

	return NewClock(hour, minute), nil
}

// MustParseClock is ParseClock that panics on error. Intended for tests and
// compile-time constants.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hour returns the hour component (0-23).
func (c Clock) Hour() int {
	return int(c) / 60 % 24
}

// Minute returns the minute component (0-59).
func (c Clock) Minute() int {
	return int(c) % 60
}

// String renders the clock as "HH:MM", the wire format.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// MarshalJSON renders the clock in its "HH:MM" wire form.
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON parses the "HH:MM" wire form.
func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Add returns the clock shifted by the given number of minutes, wrapping
// around midnight in either direction.
func (c Clock) Add(minutes int) Clock {
	m := (int(c) + minutes) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return Clock(m)
}

// Minutes returns the clock as minutes since midnight.
func (c Clock) Minutes() int {
	return int(c)
}

// At anchors the clock on a calendar date, producing a time.Time in the
// date's location.
func (c Clock) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, date.Location())
}

// ShiftDuration returns the length of a shift running from start to end as a
// duration. An end at or before the start is treated as wrapping past
// midnight into the next day.
func ShiftDuration(start, end Clock) time.Duration {
	minutes := int(end) - int(start)
	if minutes <= 0 {
		minutes += MinutesPerDay
	}
	return time.Duration(minutes) * time.Minute
}

// SpanContains reports whether the instant t lies within [start, end),
// normalizing an overnight span. A shift 22:00-06:00 contains 23:00 and
// 05:00 but not 12:00.
func SpanContains(start, end, t Clock) bool {
	if end > start {
		return t >= start && t < end
	}
	// Overnight: the span covers [start, 24:00) and [00:00, end).
	return t >= start || t < end
}

// Overlaps reports whether two same-day spans [aStart, aEnd) and
// [bStart, bEnd) share any minute. Neither span may wrap.
func Overlaps(aStart, aEnd, bStart, bEnd Clock) bool {
	return aStart < bEnd && bStart < aEnd
}

// RestHours returns the rest between the end of one working period and the
// start of the next, in hours. Negative when the periods overlap.
func RestHours(prevEnd, nextStart time.Time) float64 {
	return nextStart.Sub(prevEnd).Hours()
}
