package game

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// logRunStart reports the initial world.
func (g *Game) logRunStart() {
	slog.Info("world created",
		"run", g.runID,
		"seed", g.seed,
		"creatures", g.creatures.Count(),
		"bushes", len(g.index.Bushes()),
		"water_points", len(g.index.Water()),
		"berries", g.index.Berries(),
	)
}

// logRunEnd reports how far the run got and how fast.
func (g *Game) logRunEnd() {
	elapsed := g.bridge.WallNow().Sub(g.startedAt)
	tps := 0.0
	if elapsed > 0 {
		tps = float64(g.Tick()) / elapsed.Seconds()
	}
	slog.Info("run finished",
		"run", g.runID,
		"ticks", humanize.Comma(int64(g.Tick())),
		"seconds_recorded", len(g.tracker.History()),
		"elapsed", elapsed.Round(time.Millisecond).String(),
		"rate", humanize.SIWithDigits(tps, 1, "tick/s"),
	)
}
