package timeutil

import "fmt"

// Grid partitions the day into fixed-length intervals used to drive the
// assignment loop. An interval is identified by its start clock.
type Grid struct {
	intervalMinutes int
}

// NewGrid creates a grid with the given interval length. The length must be
// positive and divide the day evenly.
func NewGrid(intervalMinutes int) (Grid, error) {
	if intervalMinutes <= 0 {
		return Grid{}, fmt.Errorf("interval length must be positive, got %d", intervalMinutes)
	}
	if MinutesPerDay%intervalMinutes != 0 {
		return Grid{}, fmt.Errorf("interval length %d does not divide the day evenly", intervalMinutes)
	}
	return Grid{intervalMinutes: intervalMinutes}, nil
}

// IntervalMinutes returns the configured interval length.
func (g Grid) IntervalMinutes() int {
	return g.intervalMinutes
}

// Truncate returns the start of the interval containing c.
func (g Grid) Truncate(c Clock) Clock {
	return Clock(int(c) / g.intervalMinutes * g.intervalMinutes)
}

// Aligned reports whether c falls exactly on an interval boundary.
func (g Grid) Aligned(c Clock) bool {
	return int(c)%g.intervalMinutes == 0
}

// IntervalsBetween returns the interval start clocks covering the span
// [start, end). The span must not wrap; callers split overnight spans at
// midnight first.
func (g Grid) IntervalsBetween(start, end Clock) []Clock {
	if end <= start {
		return nil
	}
	first := g.Truncate(start)
	var intervals []Clock
	for c := first; c < end; c += Clock(g.intervalMinutes) {
		intervals = append(intervals, c)
	}
	return intervals
}

// ShiftIntervals returns the interval starts a shift covers, normalizing
// overnight shifts. For a 22:00-06:00 shift on an hourly grid, sameDay holds
// the 22:00 and 23:00 intervals and nextDay the 00:00-05:00 intervals of the
// following day.
func (g Grid) ShiftIntervals(start, end Clock) (sameDay []Clock, nextDay []Clock) {
	if end > start {
		return g.IntervalsBetween(start, end), nil
	}
	sameDay = g.IntervalsBetween(start, Clock(MinutesPerDay))
	nextDay = g.IntervalsBetween(0, end)
	return sameDay, nextDay
}
