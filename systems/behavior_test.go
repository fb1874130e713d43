package systems

import (
	"math"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

func TestThirstyCreatureSeeksWaterSameTick(t *testing.T) {
	f := newFixture(t)
	water := f.index.AddWater(200, 100, 6)
	e := f.spawn(100, 100, components.Vitals{Energy: 100, Thirst: 65, Hunger: 100})

	f.tick(t)

	beh := f.creatures.Behavior(e)
	if beh.State != components.StateSeekWater {
		t.Errorf("state = %v, want %v", beh.State, components.StateSeekWater)
	}
	if beh.Target != components.ResourceTarget(components.ResourceWater, water) {
		t.Errorf("target = %+v, want water %v", beh.Target, water)
	}
	if x := f.creatures.Position(e).X; math.Abs(x-101) > 1e-9 {
		t.Errorf("x = %v, want 101 after one step", x)
	}
	if !Holds(f.resource(t, water), e) {
		t.Error("unreserved water point not claimed en route")
	}
}

func TestThirstBeforeHunger(t *testing.T) {
	f := newFixture(t)
	f.index.AddWater(300, 100, 6)
	f.bush(110, 100, 3)
	e := f.spawn(100, 100, components.Vitals{Energy: 100, Thirst: 60, Hunger: 10})

	f.tick(t)

	if s := f.creatures.Behavior(e).State; s != components.StateSeekWater {
		t.Errorf("state = %v, want %v", s, components.StateSeekWater)
	}
}

func TestEatPauseScenario(t *testing.T) {
	f := newFixture(t)
	bush := f.bush(111, 100, 3)
	e := f.spawn(100, 100, components.Vitals{Energy: 100, Thirst: 100, Hunger: 60})

	// Touch distance is 5 + 6 = 11, so the creature arrives immediately.
	f.tick(t)
	beh := f.creatures.Behavior(e)
	if beh.State != components.StatePaused || beh.Pending != components.ActionEat {
		t.Fatalf("state=%v pending=%v, want paused with pending eat", beh.State, beh.Pending)
	}
	if !Holds(f.resource(t, bush), e) {
		t.Fatal("bush not claimed on arrival")
	}

	f.wall.Advance(499 * time.Millisecond)
	f.tick(t)
	if beh.State != components.StatePaused {
		t.Fatalf("state after 499ms = %v, want paused", beh.State)
	}
	if f.creatures.Vitals(e).Hunger != 60 {
		t.Fatalf("hunger restored before the pause elapsed")
	}

	f.wall.Advance(time.Millisecond)
	f.tick(t)

	if got := f.creatures.Vitals(e).Hunger; got != 90 {
		t.Errorf("hunger = %d, want 90", got)
	}
	res := f.resource(t, bush)
	if res.Quantity != 2 {
		t.Errorf("berries = %d, want 2", res.Quantity)
	}
	if len(res.Reserved) != 0 {
		t.Errorf("ledger = %d after eating, want 0", len(res.Reserved))
	}
	if beh.Pending != components.ActionNone {
		t.Errorf("pending = %v, want none", beh.Pending)
	}
	if beh.Target.Kind != components.TargetPoint {
		t.Fatalf("target kind = %v, want move-away point", beh.Target.Kind)
	}
	pos := f.creatures.Position(e)
	d := math.Hypot(beh.Target.Point.X-pos.X, beh.Target.Point.Y-pos.Y)
	if math.Abs(d-15) > 1e-9 {
		t.Errorf("move-away distance = %v, want 3 * 5 = 15", d)
	}
	if got := f.behavior.Counters().Meals; got != 1 {
		t.Errorf("meals = %d, want 1", got)
	}
}

func TestMoveAwayPointClearsOnArrival(t *testing.T) {
	f := newFixture(t)
	e := f.spawn(400, 300, satisfied())
	f.creatures.Behavior(e).Target = components.PointTarget(415, 300)

	// 15 away with touch distance 11: four steps en route, then arrival.
	for i := 0; i < 4; i++ {
		f.tick(t)
		if f.creatures.Behavior(e).Target.Kind != components.TargetPoint {
			t.Fatalf("point cleared early at step %d", i)
		}
	}
	f.tick(t)
	if !f.creatures.Behavior(e).Target.IsNone() {
		t.Errorf("target = %+v, want none after arrival", f.creatures.Behavior(e).Target)
	}
}

func TestNeedyCreatureSeeksAfterMoveAway(t *testing.T) {
	f := newFixture(t)
	water := f.index.AddWater(100, 300, 6)
	e := f.spawn(400, 300, components.Vitals{Energy: 100, Thirst: 50, Hunger: 100})
	f.creatures.Behavior(e).Target = components.PointTarget(415, 300)

	// Four steps en route, arrival clears the point, then seeking resumes.
	for i := 0; i < 5; i++ {
		f.tick(t)
	}
	f.tick(t)

	beh := f.creatures.Behavior(e)
	if beh.State != components.StateSeekWater || beh.Target != components.ResourceTarget(components.ResourceWater, water) {
		t.Errorf("state=%v target=%+v, want seeking water right after the move-away point", beh.State, beh.Target)
	}
}

func TestDrinkRestoresAndReleases(t *testing.T) {
	f := newFixture(t)
	water := f.index.AddWater(105, 100, 6)
	e := f.spawn(100, 100, components.Vitals{Energy: 100, Thirst: 65, Hunger: 100})

	f.tick(t)
	f.wall.Advance(500 * time.Millisecond)
	f.tick(t)

	if got := f.creatures.Vitals(e).Thirst; got != 100 {
		t.Errorf("thirst = %d, want 100 (65 + 40 capped)", got)
	}
	if len(f.resource(t, water).Reserved) != 0 {
		t.Error("water claim not released after drinking")
	}
	if got := f.behavior.Counters().Drinks; got != 1 {
		t.Errorf("drinks = %d, want 1", got)
	}
}

func TestBushDepletedDuringPause(t *testing.T) {
	f := newFixture(t)
	bush := f.bush(111, 100, 1)
	e := f.spawn(100, 100, components.Vitals{Energy: 100, Thirst: 100, Hunger: 50})

	f.tick(t)
	if f.creatures.Behavior(e).Pending != components.ActionEat {
		t.Fatal("expected pending eat")
	}

	// Something outside the protocol empties the bush and drops the ledger.
	res := f.resource(t, bush)
	res.Quantity = 0
	res.Reserved = nil

	f.wall.Advance(time.Second)
	f.tick(t)

	if got := f.creatures.Vitals(e).Hunger; got != 50 {
		t.Errorf("hunger = %d, want 50 (no free restoration)", got)
	}
	if res.Quantity != 0 {
		t.Errorf("berries = %d, want 0", res.Quantity)
	}
	if got := f.behavior.Counters().FailedMeals; got != 1 {
		t.Errorf("failed meals = %d, want 1", got)
	}
}

func TestBushContention(t *testing.T) {
	f := newFixture(t)
	bush := f.bush(400, 300, 3)

	hungry := components.Vitals{Energy: 100, Thirst: 100, Hunger: 50}
	agents := []ecs.Entity{
		f.spawn(100, 100, hungry),
		f.spawn(100, 500, hungry),
		f.spawn(700, 100, hungry),
		f.spawn(700, 500, hungry),
	}

	f.tick(t)

	res := f.resource(t, bush)
	if len(res.Reserved) != 3 {
		t.Errorf("ledger = %d, want 3 of 4 claims to succeed", len(res.Reserved))
	}
	want := components.ResourceTarget(components.ResourceBush, bush)
	for _, e := range agents {
		if got := f.creatures.Behavior(e).Target; got != want {
			t.Errorf("creature %v target = %+v, want the only bush", e, got)
		}
	}
}

func TestWaterContentionPrefersFreeAlternative(t *testing.T) {
	f := newFixture(t)
	near := f.index.AddWater(150, 100, 6)
	far := f.index.AddWater(300, 100, 6)

	thirsty := components.Vitals{Energy: 100, Thirst: 50, Hunger: 100}
	a := f.spawn(100, 100, thirsty)
	b := f.spawn(101, 100, thirsty)

	f.tick(t)

	nearRes, farRes := f.resource(t, near), f.resource(t, far)
	if len(nearRes.Reserved) != 1 || len(farRes.Reserved) != 1 {
		t.Fatalf("ledgers near=%d far=%d, want one claim each", len(nearRes.Reserved), len(farRes.Reserved))
	}
	if nearRes.Reserved[0] == farRes.Reserved[0] {
		t.Error("one creature holds both water points")
	}
	if f.index.HeldBy(a) != 1 || f.index.HeldBy(b) != 1 {
		t.Errorf("HeldBy a=%d b=%d, want 1 each", f.index.HeldBy(a), f.index.HeldBy(b))
	}
}

func TestWaterContentionSinglePoint(t *testing.T) {
	f := newFixture(t)
	water := f.index.AddWater(300, 100, 6)

	thirsty := components.Vitals{Energy: 100, Thirst: 50, Hunger: 100}
	a := f.spawn(100, 100, thirsty)
	b := f.spawn(100, 110, thirsty)

	f.tick(t)

	res := f.resource(t, water)
	if len(res.Reserved) != 1 {
		t.Fatalf("ledger = %d, want exactly one winner", len(res.Reserved))
	}
	target := components.ResourceTarget(components.ResourceWater, water)
	if f.creatures.Behavior(a).Target != target || f.creatures.Behavior(b).Target != target {
		t.Error("loser should still approach the only water point")
	}
}

func TestClaimRefusedCountedOncePerWait(t *testing.T) {
	f := newFixture(t)
	water := f.index.AddWater(105, 100, 6)

	thirsty := components.Vitals{Energy: 100, Thirst: 50, Hunger: 100}
	a := f.spawn(100, 100, thirsty)
	b := f.spawn(100, 100, thirsty)

	// a takes the slot and pauses; b waits at the point without the wall
	// clock moving.
	for i := 0; i < 5; i++ {
		f.tick(t)
	}
	if !Holds(f.resource(t, water), a) {
		t.Fatal("first creature should hold the water point")
	}
	if got := f.behavior.Counters().ClaimsRefused; got != 1 {
		t.Errorf("claims refused after 5 waiting ticks = %d, want 1", got)
	}

	// a finishes drinking and releases; b claims the slot on the same tick.
	f.wall.Advance(time.Second)
	f.tick(t)
	if !Holds(f.resource(t, water), b) || f.creatures.Behavior(b).State != components.StatePaused {
		t.Fatal("waiting creature should claim the freed water point")
	}
	if f.creatures.Behavior(b).Refused != components.NoTarget() {
		t.Error("refusal not cleared after a successful claim")
	}
	if got := f.behavior.Counters().ClaimsRefused; got != 1 {
		t.Errorf("claims refused = %d, want 1", got)
	}
}

func TestRetargetReleasesClaim(t *testing.T) {
	f := newFixture(t)
	bush := f.bush(400, 300, 3)
	water := f.index.AddWater(100, 300, 6)
	e := f.spawn(250, 300, components.Vitals{Energy: 100, Thirst: 100, Hunger: 50})

	f.tick(t)
	if !Holds(f.resource(t, bush), e) {
		t.Fatal("bush not claimed on selection")
	}

	f.creatures.Vitals(e).Thirst = 50
	f.tick(t)

	if Holds(f.resource(t, bush), e) {
		t.Error("bush claim kept after switching to water")
	}
	if !Holds(f.resource(t, water), e) {
		t.Error("water not claimed")
	}
}

func TestSatisfiedCreatureWandersWithoutTarget(t *testing.T) {
	f := newFixture(t)
	f.bush(410, 300, 3)
	e := f.spawn(400, 300, satisfied())

	f.tick(t)

	beh := f.creatures.Behavior(e)
	if beh.State != components.StateWander || !beh.Target.IsNone() {
		t.Errorf("state=%v target=%+v, want wander with no target", beh.State, beh.Target)
	}
}

func TestStationaryCreatureIdles(t *testing.T) {
	f := newFixture(t)
	tr := components.Traits{Name: "rock", Speed: 0, Size: 50}
	e := f.creatures.Spawn(400, 300, tr, satisfied(), 0)

	f.tick(t)

	if s := f.creatures.Behavior(e).State; s != components.StateIdle {
		t.Errorf("state = %v, want %v", s, components.StateIdle)
	}
	if p := f.creatures.Position(e); p.X != 400 || p.Y != 300 {
		t.Errorf("idle creature moved to %+v", *p)
	}
}

func TestCreaturesStayInBounds(t *testing.T) {
	f := newFixture(t)
	f.bush(0, 0, 3)
	f.index.AddWater(800, 600, 6)

	corners := [][2]float64{{0, 0}, {800, 0}, {0, 600}, {800, 600}, {400, 0}}
	for i, c := range corners {
		vit := satisfied()
		switch i % 3 {
		case 1:
			vit.Thirst = 10
		case 2:
			vit.Hunger = 10
		}
		tr := components.Traits{Name: "fast", Speed: 8, Size: 20}
		f.creatures.Spawn(c[0], c[1], tr, vit, 0)
	}

	for i := 0; i < 500; i++ {
		f.tick(t)
		f.wall.Advance(100 * time.Millisecond)
	}
}
