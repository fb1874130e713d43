package game

import (
	"log/slog"

	"github.com/pthm-cable/meadow/clock"
	"github.com/pthm-cable/meadow/telemetry"
)

// flushStats samples every creature into the tracker, records the second
// and hands it to the callback, the log, the CSV output and the store.
func (g *Game) flushStats(tick clock.Tick) {
	for _, c := range g.Creatures() {
		g.tracker.Add(telemetry.Sample{
			Speed:  c.Speed,
			Size:   c.Size,
			Energy: c.Vitals.Energy,
			Hunger: c.Vitals.Hunger,
			Thirst: c.Vitals.Thirst,
		})
	}

	counters := g.behavior.Counters()
	g.behavior.ResetCounters()

	stats, ok := g.tracker.Record(uint64(tick), g.index.Berries(), telemetry.Outcomes{
		Drinks:        counters.Drinks,
		Meals:         counters.Meals,
		FailedMeals:   counters.FailedMeals,
		ClaimsRefused: counters.ClaimsRefused,
	})
	if !ok {
		return
	}
	g.lastStats = stats
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "second", stats.Second, "perf", perfStats)
	}

	if err := g.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.Second); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	if g.store != nil {
		if err := g.store.SaveStats(g.runID, []telemetry.SecondStats{stats}); err != nil {
			slog.Error("failed to save stats", "run", g.runID, "error", err)
		}
	}
}
