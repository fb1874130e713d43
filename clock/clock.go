// Package clock reconciles the two time domains of the simulation:
// simulated ticks, which drive movement and vitals drain, and wall-clock
// time, which gates the fixed-length consumption pause.
package clock

import (
	"fmt"
	"sync"
	"time"
)

// Tick counts simulated time units since the simulation started.
type Tick uint64

// Duration is a span of simulated ticks.
type Duration int64

// String formats the tick as "tNNN".
func (t Tick) String() string { return fmt.Sprintf("t%d", uint64(t)) }

func (d Duration) String() string { return fmt.Sprintf("%d ticks", int64(d)) }

// Add returns t+d, clamped at zero.
func (t Tick) Add(d Duration) Tick {
	if d < 0 && Tick(-d) > t {
		return 0
	}
	return t + Tick(d)
}

// WallClock supplies real elapsed time.
type WallClock interface {
	Now() time.Time
}

// RealClock reads the system clock (with monotonic reading).
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a controllable WallClock for tests and replays.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (m *ManualClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set sets the current time.
func (m *ManualClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d.
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Bridge pairs the tick scheduler with a wall clock.
// Everything in the core reads time through a Bridge.
type Bridge struct {
	sched *Scheduler
	wall  WallClock
}

// NewBridge creates a bridge over a fresh scheduler and the given wall clock.
// A nil wall clock means RealClock.
func NewBridge(wall WallClock) *Bridge {
	if wall == nil {
		wall = RealClock{}
	}
	return &Bridge{sched: NewScheduler(), wall: wall}
}

// Scheduler returns the simulated-time scheduler.
func (b *Bridge) Scheduler() *Scheduler {
	return b.sched
}

// Now returns the current simulated tick.
func (b *Bridge) Now() Tick {
	return b.sched.Now()
}

// WallNow samples the wall clock.
func (b *Bridge) WallNow() time.Time {
	return b.wall.Now()
}

// Advance moves simulated time forward by one tick and runs due processes.
func (b *Bridge) Advance() Tick {
	return b.sched.Advance()
}
