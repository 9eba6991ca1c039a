package services

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrConcurrentGeneration is returned when another run already holds an
// overlapping horizon.
var ErrConcurrentGeneration = errors.New("CONCURRENT_GENERATION: another generation run holds an overlapping horizon")

// generationGuard serializes generation runs by horizon overlap. Runs over
// disjoint horizons proceed concurrently; an overlapping horizon is rejected
// rather than queued, so callers get an immediate, actionable error.
type generationGuard struct {
	mu     sync.Mutex
	active []horizon
}

type horizon struct {
	start time.Time
	end   time.Time
}

func (h horizon) overlaps(other horizon) bool {
	return !h.start.After(other.end) && !other.start.After(h.end)
}

// guard is the process-wide instance; one engine process runs one guard.
var guard = &generationGuard{}

// Acquire reserves the horizon for a run. The returned release function must
// be called when the run finishes.
func (g *generationGuard) Acquire(start, end time.Time) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	requested := horizon{start: start, end: end}
	for _, held := range g.active {
		if requested.overlaps(held) {
			return nil, fmt.Errorf("%w: held horizon %s..%s",
				ErrConcurrentGeneration, held.start.Format("2006-01-02"), held.end.Format("2006-01-02"))
		}
	}

	g.active = append(g.active, requested)

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		for i, held := range g.active {
			if held == requested {
				g.active = append(g.active[:i], g.active[i+1:]...)
				return
			}
		}
	}, nil
}
