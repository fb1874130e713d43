package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/meadow/clock"
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/telemetry"
)

// newTestGame creates a headless game on a manual wall clock.
func newTestGame(t *testing.T, cfg *config.Config, opts Options) (*Game, *clock.ManualClock) {
	t.Helper()
	if cfg == nil {
		cfg = config.MustLoad("")
	}
	wall := clock.NewManualClock(time.Unix(1_700_000_000, 0))
	opts.Headless = true
	opts.Wall = wall
	if opts.Seed == 0 {
		opts.Seed = 42
	}

	g, err := NewGameWithOptions(cfg, opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Close)
	return g, wall
}

func TestNewGameSpawnsInitialWorld(t *testing.T) {
	g, _ := newTestGame(t, nil, Options{})
	cfg := g.cfg

	if got := len(g.Creatures()); got != cfg.Population.InitialCreatures {
		t.Errorf("creatures = %d, want %d", got, cfg.Population.InitialCreatures)
	}
	if got := len(g.Bushes()); got != cfg.Population.InitialBushes {
		t.Errorf("bushes = %d, want %d", got, cfg.Population.InitialBushes)
	}
	if got := len(g.WaterPoints()); got != len(cfg.Lake.Points) {
		t.Errorf("water points = %d, want %d", got, len(cfg.Lake.Points))
	}
	if got, want := g.index.Berries(), cfg.Population.InitialBushes*cfg.Bush.Berries; got != want {
		t.Errorf("berries = %d, want %d", got, want)
	}

	for _, b := range g.Bushes() {
		if g.nearLake(b.X, b.Y) {
			t.Errorf("bush at (%.1f, %.1f) placed in the lake", b.X, b.Y)
		}
	}
	for _, c := range g.Creatures() {
		if c.Vitals != (components.Vitals{Energy: 100, Thirst: 100, Hunger: 100}) {
			t.Fatalf("creature %s vitals = %+v", c.Name, c.Vitals)
		}
	}
}

func TestSameSeedSameWorld(t *testing.T) {
	a, _ := newTestGame(t, nil, Options{Seed: 7})
	b, _ := newTestGame(t, nil, Options{Seed: 7})

	ba, bb := a.Bushes(), b.Bushes()
	for i := range ba {
		if ba[i].X != bb[i].X || ba[i].Y != bb[i].Y {
			t.Fatalf("bush %d differs: (%v,%v) vs (%v,%v)", i, ba[i].X, ba[i].Y, bb[i].X, bb[i].Y)
		}
	}
	ca, cb := a.Creatures(), b.Creatures()
	for i := range ca {
		if ca[i].X != cb[i].X || ca[i].Name != cb[i].Name || ca[i].Color != cb[i].Color {
			t.Fatalf("creature %d differs", i)
		}
	}
}

func TestSpawnCaps(t *testing.T) {
	cfg := config.MustLoad("")
	cfg.Population.InitialCreatures = 2
	cfg.Population.MaxCreatures = 3
	cfg.Population.InitialBushes = 1
	cfg.Population.MaxBushes = 2
	g, _ := newTestGame(t, cfg, Options{})

	if _, ok := g.SpawnCreature(10, 10); !ok {
		t.Error("spawn under the cap refused")
	}
	if _, ok := g.SpawnCreature(10, 10); ok {
		t.Error("spawn over the cap accepted")
	}
	if g.creatures.Count() != 3 {
		t.Errorf("count = %d, want 3", g.creatures.Count())
	}

	if !g.SpawnBush(20, 20) {
		t.Error("bush under the cap refused")
	}
	if g.SpawnBush(30, 30) {
		t.Error("bush over the cap accepted")
	}
}

func TestSpawnClampsToWorld(t *testing.T) {
	g, _ := newTestGame(t, nil, Options{})
	g.cfg.Population.MaxCreatures++

	e, ok := g.SpawnCreature(-50, 10_000)
	if !ok {
		t.Fatal("spawn refused")
	}
	pos := g.creatures.Position(e)
	if pos.X != 0 || pos.Y != g.cfg.Derived.WorldH {
		t.Errorf("pos = %+v, want (0, %v)", *pos, g.cfg.Derived.WorldH)
	}
}

func TestStepAdvancesTickAndDrains(t *testing.T) {
	cfg := config.MustLoad("")
	cfg.Population.InitialCreatures = 1
	g, _ := newTestGame(t, cfg, Options{StepsPerUpdate: 5})

	for range 6 {
		g.UpdateHeadless()
	}
	if g.Tick() != 30 {
		t.Fatalf("tick = %d, want 30", g.Tick())
	}
	// One drain at tick 30.
	if v := g.Creatures()[0].Vitals; v.Energy != 99 || v.Thirst != 99 || v.Hunger != 99 {
		t.Errorf("vitals = %+v, want 99 each", v)
	}
}

func TestStatsRecordedEverySecond(t *testing.T) {
	var got []telemetry.SecondStats
	g, _ := newTestGame(t, nil, Options{
		StatsCallback: func(s telemetry.SecondStats) { got = append(got, s) },
	})

	for range 2 * g.cfg.Clock.TicksPerSecond {
		g.Step()
	}

	if len(got) != 2 {
		t.Fatalf("recorded %d seconds, want 2", len(got))
	}
	for i, s := range got {
		if s.Second != i+1 || s.Tick != uint64((i+1)*g.cfg.Clock.TicksPerSecond) {
			t.Errorf("row %d: second=%d tick=%d", i, s.Second, s.Tick)
		}
		if s.Creatures != g.cfg.Population.InitialCreatures {
			t.Errorf("row %d: creatures=%d", i, s.Creatures)
		}
	}
	if g.Stats() != got[1] || len(g.History()) != 2 {
		t.Error("last stats or history out of sync with callback")
	}
}

func TestOutputDirWritesCSVAndStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	g, _ := newTestGame(t, nil, Options{OutputDir: dir})

	for range g.cfg.Clock.TicksPerSecond {
		g.Step()
	}
	g.Close()

	for _, name := range []string{"stats.csv", "perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}

	store, err := telemetry.OpenStore(filepath.Join(dir, g.cfg.Telemetry.StatsDB))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	rows, err := store.RunStats(g.RunID())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Second != 1 {
		t.Errorf("stored rows = %+v", rows)
	}
}

func TestRunKeepsInvariants(t *testing.T) {
	g, wall := newTestGame(t, nil, Options{})

	for i := range 2400 {
		g.Step()
		wall.Advance(time.Second / 60)

		if i%60 == 0 {
			if err := systems.CheckInvariants(g.creatures, g.index, g.cfg.Derived.WorldW, g.cfg.Derived.WorldH); err != nil {
				t.Fatalf("tick %d: %v", g.Tick(), err)
			}
		}
	}

	// 2400 ticks drain 80 points, well past both thresholds.
	var drinks, meals int
	for _, s := range g.History() {
		drinks += s.Drinks
		meals += s.Meals
	}
	if drinks == 0 || meals == 0 {
		t.Errorf("drinks=%d meals=%d, want both positive", drinks, meals)
	}
}

func TestSetStepsPerUpdateClamps(t *testing.T) {
	g, _ := newTestGame(t, nil, Options{StepsPerUpdate: 50})
	if g.StepsPerUpdate() != 50 {
		t.Errorf("headless steps = %d, want 50 as given", g.StepsPerUpdate())
	}
	g.SetStepsPerUpdate(0)
	if g.StepsPerUpdate() != MinStepsPerUpdate {
		t.Errorf("steps = %d, want %d", g.StepsPerUpdate(), MinStepsPerUpdate)
	}
	g.SetStepsPerUpdate(99)
	if g.StepsPerUpdate() != MaxStepsPerUpdate {
		t.Errorf("steps = %d, want %d", g.StepsPerUpdate(), MaxStepsPerUpdate)
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []components.Position{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 5, 5, true},
		{"outside right", 15, 5, false},
		{"outside above", 5, -1, false},
		{"near corner inside", 0.5, 9.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointInPolygon(tt.x, tt.y, square); got != tt.want {
				t.Errorf("pointInPolygon(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
