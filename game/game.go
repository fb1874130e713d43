package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/camera"
	"github.com/pthm-cable/meadow/clock"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/renderer"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/telemetry"
	"github.com/pthm-cable/meadow/ui"
)

// Steps-per-update limits for the keyboard and HUD controls.
const (
	MinStepsPerUpdate = 1
	MaxStepsPerUpdate = 10
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string // CSV, config snapshot and stats db; empty = disabled
	Headless       bool
	StepsPerUpdate int
	Wall           clock.WallClock // nil = real time
	StatsCallback  func(telemetry.SecondStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand
	seed  int64
	runID string

	bridge    *clock.Bridge
	creatures *systems.Creatures
	index     *systems.ResourceIndex
	steer     *systems.Steering
	behavior  *systems.BehaviorSystem
	vitals    *systems.VitalsSystem
	regrow    *systems.RegrowSystem
	placement *systems.Placement

	// Telemetry
	tracker       *telemetry.Tracker
	perf          *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	store         *telemetry.Store
	statsCallback func(telemetry.SecondStats)
	logStats      bool
	lastStats     telemetry.SecondStats

	// Rendering, nil when headless
	camera    *camera.Camera
	scene     *renderer.Scene
	hud       *ui.HUD
	inspector *ui.Inspector

	// View buffers reused between frames
	creatureViews []systems.CreatureView
	bushViews     []systems.ResourceView
	waterViews    []systems.ResourceView

	paused         bool
	headless       bool
	stepsPerUpdate int
	startedAt      time.Time
	closed         bool
}

// NewGameWithOptions creates a game, spawns the lake, bushes and initial
// creatures, and opens telemetry outputs.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	bridge := clock.NewBridge(opts.Wall)

	w, h := cfg.Derived.WorldW, cfg.Derived.WorldH
	creatures := systems.NewCreatures(world)
	index := systems.NewResourceIndex(world, cfg.Steering.DefaultTargetRadius)
	steer := systems.NewSteering(&cfg.Steering, rng)

	g := &Game{
		cfg:            cfg,
		world:          world,
		rng:            rng,
		seed:           opts.Seed,
		runID:          uuid.NewString(),
		bridge:         bridge,
		creatures:      creatures,
		index:          index,
		steer:          steer,
		behavior:       systems.NewBehaviorSystem(cfg, bridge, creatures, index, steer),
		vitals:         systems.NewVitalsSystem(&cfg.Behavior, bridge.Scheduler(), creatures),
		regrow:         systems.NewRegrowSystem(&cfg.Bush, bridge.Scheduler(), index, rng),
		placement:      systems.NewPlacement(&cfg.Placement, opts.Seed, rng, w, h),
		tracker:        telemetry.NewTracker(),
		perf:           telemetry.NewPerfCollector(cfg.Derived.TicksPerStat, nil),
		statsCallback:  opts.StatsCallback,
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: opts.StepsPerUpdate,
		startedAt:      bridge.WallNow(),
	}

	if g.stepsPerUpdate < 1 {
		g.stepsPerUpdate = cfg.Clock.StepsPerUpdate
	}

	if err := g.openOutputs(opts.OutputDir); err != nil {
		g.Close()
		return nil, err
	}

	if !opts.Headless {
		g.camera = camera.New(float32(cfg.Screen.Width), float32(cfg.Screen.Height), float32(w), float32(h))
		g.scene = renderer.NewScene(cfg)
		g.hud = ui.NewHUD(MinStepsPerUpdate, MaxStepsPerUpdate)
		g.inspector = ui.NewInspector(cfg.Behavior.VitalsMax)
	}

	g.spawnInitialWorld()
	g.logRunStart()

	return g, nil
}

// openOutputs sets up CSV output and the stats store under dir.
func (g *Game) openOutputs(dir string) error {
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		return fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(g.cfg); err != nil {
		return fmt.Errorf("writing config snapshot: %w", err)
	}

	if dir == "" || g.cfg.Telemetry.StatsDB == "" {
		return nil
	}
	store, err := telemetry.OpenStore(filepath.Join(dir, g.cfg.Telemetry.StatsDB))
	if err != nil {
		return err
	}
	g.store = store
	return store.BeginRun(g.runID, g.seed, g.startedAt)
}

// Update handles input and runs stepsPerUpdate ticks unless paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// UpdateHeadless runs stepsPerUpdate ticks without input handling.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// Tick returns the current simulated tick.
func (g *Game) Tick() uint64 {
	return uint64(g.bridge.Now())
}

// RunID returns the identifier of this run in the stats store.
func (g *Game) RunID() string {
	return g.runID
}

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused suspends or resumes stepping. Consumption pauses keep running
// on the wall clock while the game is paused.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// StepsPerUpdate returns the number of ticks run per Update call.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets the number of ticks run per Update call, within
// the interactive limits.
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = clampSteps(n)
}

// Stats returns the last recorded second.
func (g *Game) Stats() telemetry.SecondStats {
	return g.lastStats
}

// History returns every recorded second.
func (g *Game) History() []telemetry.SecondStats {
	return g.tracker.History()
}

// Creatures returns a snapshot of all creatures. The slice is reused by the
// next call.
func (g *Game) Creatures() []systems.CreatureView {
	g.creatureViews = g.creatures.Views(g.creatureViews)
	return g.creatureViews
}

// Bushes returns a snapshot of all bushes.
func (g *Game) Bushes() []systems.ResourceView {
	g.bushViews = g.index.BushViews(g.bushViews)
	return g.bushViews
}

// WaterPoints returns a snapshot of all water points.
func (g *Game) WaterPoints() []systems.ResourceView {
	g.waterViews = g.index.WaterViews(g.waterViews)
	return g.waterViews
}

// Close flushes and closes telemetry outputs.
func (g *Game) Close() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		g.outputManager = nil
	}
	if g.store != nil {
		if err := g.store.Close(); err != nil {
			slog.Error("failed to close stats store", "error", err)
		}
		g.store = nil
	}
	if !g.closed && g.Tick() > 0 {
		g.logRunEnd()
	}
	g.closed = true
}

func clampSteps(n int) int {
	return max(MinStepsPerUpdate, min(n, MaxStepsPerUpdate))
}
