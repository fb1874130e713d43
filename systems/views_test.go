package systems

import (
	"testing"

	"github.com/pthm-cable/meadow/components"
)

func TestCreatureViewsCopyState(t *testing.T) {
	f := newFixture(t)
	e := f.spawn(120, 80, components.Vitals{Energy: 90, Thirst: 80, Hunger: 70})

	views := f.creatures.Views(nil)
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	v := views[0]
	if v.Entity != e || v.X != 120 || v.Y != 80 || v.Radius != 5 || v.Size != 50 {
		t.Errorf("view = %+v", v)
	}
	if v.Vitals.Hunger != 70 || v.State != components.StateIdle {
		t.Errorf("vitals/state = %+v / %v", v.Vitals, v.State)
	}

	// Views are copies.
	views[0].X = -1
	views[0].Vitals.Hunger = 0
	if f.creatures.Position(e).X != 120 || f.creatures.Vitals(e).Hunger != 70 {
		t.Error("mutating a view changed the creature")
	}
}

func TestCreatureViewsReuseBuffer(t *testing.T) {
	f := newFixture(t)
	f.agents(3)

	buf := f.creatures.Views(nil)
	buf = f.creatures.Views(buf)
	if len(buf) != 3 {
		t.Errorf("len = %d after reuse, want 3", len(buf))
	}
}

func TestResourceViews(t *testing.T) {
	f := newFixture(t)
	agents := f.agents(2)
	b := f.bush(10, 20, 2)
	f.index.AddWater(30, 40, 0)
	Claim(f.resource(t, b), agents[0])
	Claim(f.resource(t, b), agents[1])

	bushes := f.index.BushViews(nil)
	if len(bushes) != 1 {
		t.Fatalf("got %d bushes", len(bushes))
	}
	if got := bushes[0]; got.Quantity != 2 || got.MaxQuantity != 3 || got.Claims != 2 || got.Kind != components.ResourceBush {
		t.Errorf("bush view = %+v", got)
	}

	water := f.index.WaterViews(nil)
	if len(water) != 1 {
		t.Fatalf("got %d water points", len(water))
	}
	if water[0].Radius != f.cfg.Steering.DefaultTargetRadius {
		t.Errorf("water radius = %v, want default %v", water[0].Radius, f.cfg.Steering.DefaultTargetRadius)
	}
}

func TestBerries(t *testing.T) {
	f := newFixture(t)
	f.bush(0, 0, 3)
	f.bush(10, 0, 1)
	f.bush(20, 0, 0)
	f.index.AddWater(50, 50, 6)

	if got := f.index.Berries(); got != 4 {
		t.Errorf("Berries = %d, want 4", got)
	}
}
