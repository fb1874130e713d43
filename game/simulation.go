package game

import (
	"github.com/pthm-cable/meadow/clock"
	"github.com/pthm-cable/meadow/telemetry"
)

// Step runs a single tick: due timers (vitals drain, regrow) fire first,
// then every creature takes one decision step. Stats are recorded once per
// stats window.
func (g *Game) Step() {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseTimers)
	tick := g.bridge.Advance()

	g.perf.StartPhase(telemetry.PhaseBehavior)
	g.behavior.Update()

	if g.statsDue(tick) {
		g.perf.StartPhase(telemetry.PhaseStats)
		g.flushStats(tick)
	}

	g.perf.EndTick()
}

func (g *Game) statsDue(tick clock.Tick) bool {
	return uint64(tick)%uint64(g.cfg.Derived.TicksPerStat) == 0
}
