package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/talgya/planisuss/internal/telemetry"
	"github.com/talgya/planisuss/internal/terrain"
)

// Runner drives the world forward one day at a time. It owns the only
// goroutine that mutates the world; queries from other goroutines go
// through the runner so they observe complete days only.
type Runner struct {
	Interval time.Duration // pacing per day; 0 runs flat out
	OnDay    func(stats telemetry.DayStats)

	mu      sync.Mutex
	world   *World
	speed   float64
	running bool
}

// NewRunner wraps a world with default pacing (unpaused, speed 1).
func NewRunner(w *World) *Runner {
	return &Runner{world: w, speed: 1}
}

// Run advances days until Stop is called. A non-positive speed pauses the
// loop without exiting it. Blocks the calling goroutine.
func (r *Runner) Run() {
	r.mu.Lock()
	r.running = true
	day := r.world.Day
	r.mu.Unlock()
	slog.Info("simulation started", "day", day)

	for {
		r.mu.Lock()
		if !r.running {
			r.mu.Unlock()
			break
		}
		if r.speed <= 0 {
			r.mu.Unlock()
			time.Sleep(50 * time.Millisecond)
			continue
		}
		speed := r.speed
		r.mu.Unlock()

		start := time.Now()
		r.Step()

		if r.Interval > 0 {
			target := time.Duration(float64(r.Interval) / speed)
			if elapsed := time.Since(start); elapsed < target {
				time.Sleep(target - elapsed)
			}
		}
	}

	slog.Info("simulation stopped", "day", r.Day())
}

// Step advances exactly one day, regardless of pause state. Used by the
// loop and by the manual single-step command.
func (r *Runner) Step() telemetry.DayStats {
	r.mu.Lock()
	stats := r.world.AdvanceDay()
	cb := r.OnDay
	r.mu.Unlock()

	if cb != nil {
		cb(stats)
	}
	return stats
}

// Stop ends the run loop after the in-flight day completes.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

// SetSpeed changes the pacing multiplier; zero or below pauses.
func (r *Runner) SetSpeed(speed float64) {
	r.mu.Lock()
	r.speed = speed
	r.mu.Unlock()
}

// Speed returns the current pacing multiplier.
func (r *Runner) Speed() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.speed
}

// Paused reports whether the loop is currently pausing.
func (r *Runner) Paused() bool {
	return r.Speed() <= 0
}

// Day returns the world's current day counter.
func (r *Runner) Day() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.Day
}

// SnapshotGrid returns a copy of the three grid layers.
func (r *Runner) SnapshotGrid() terrain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.SnapshotGrid()
}

// CellDetail inspects one cell.
func (r *Runner) CellDetail(c terrain.Cell) CellDetail {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.CellDetail(c)
}

// Series returns the day-by-day aggregates recorded so far.
func (r *Runner) Series() []telemetry.DayStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.Series()
}

// Latest returns the most recently completed day's aggregates.
func (r *Runner) Latest() (telemetry.DayStats, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.Latest()
}

// RecentEvents returns up to limit of the most recent events, newest last.
func (r *Runner) RecentEvents(limit int) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	evs := r.world.Events
	if limit > 0 && len(evs) > limit {
		evs = evs[len(evs)-limit:]
	}
	out := make([]Event, len(evs))
	copy(out, evs)
	return out
}
