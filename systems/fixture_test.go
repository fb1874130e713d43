package systems

import (
	"math/rand"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/clock"
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
)

// fixedRNG always returns the same value.
type fixedRNG struct{ v float64 }

func (r fixedRNG) Float64() float64 { return r.v }

// fixture wires the core systems over an empty world with a manual wall
// clock, so pauses can be stepped deterministically.
type fixture struct {
	cfg       *config.Config
	world     *ecs.World
	wall      *clock.ManualClock
	bridge    *clock.Bridge
	creatures *Creatures
	index     *ResourceIndex
	steer     *Steering
	behavior  *BehaviorSystem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}

	world := ecs.NewWorld()
	wall := clock.NewManualClock(time.Unix(1_700_000_000, 0))
	bridge := clock.NewBridge(wall)
	creatures := NewCreatures(world)
	index := NewResourceIndex(world, cfg.Steering.DefaultTargetRadius)
	steer := NewSteering(&cfg.Steering, rand.New(rand.NewSource(1)))

	return &fixture{
		cfg:       cfg,
		world:     world,
		wall:      wall,
		bridge:    bridge,
		creatures: creatures,
		index:     index,
		steer:     steer,
		behavior:  NewBehaviorSystem(cfg, bridge, creatures, index, steer),
	}
}

// spawn creates a creature with speed 1 and size 50 (radius 5).
func (f *fixture) spawn(x, y float64, vit components.Vitals) ecs.Entity {
	tr := components.Traits{Name: "test", Speed: 1, Size: 50, Strength: 50}
	return f.creatures.Spawn(x, y, tr, vit, 0)
}

// agents creates n creatures far from everything, for ledger tests.
func (f *fixture) agents(n int) []ecs.Entity {
	out := make([]ecs.Entity, n)
	for i := range out {
		out[i] = f.spawn(0, 0, satisfied())
	}
	return out
}

// bush adds a bush with the default radius and cap.
func (f *fixture) bush(x, y float64, berries int) ecs.Entity {
	return f.index.AddBush(x, y, berries, f.cfg.Bush.MaxBerries, f.cfg.Bush.RegrowRate, f.cfg.Bush.Radius)
}

func (f *fixture) resource(t *testing.T, e ecs.Entity) *components.Resource {
	t.Helper()
	_, res, ok := f.index.Get(e)
	if !ok {
		t.Fatalf("resource %v not found", e)
	}
	return res
}

// tick runs one behavior step and checks world invariants afterwards.
func (f *fixture) tick(t *testing.T) {
	t.Helper()
	f.behavior.Update()
	if err := CheckInvariants(f.creatures, f.index, f.cfg.Derived.WorldW, f.cfg.Derived.WorldH); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func satisfied() components.Vitals {
	return components.Vitals{Energy: 100, Thirst: 100, Hunger: 100}
}
