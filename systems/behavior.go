package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/clock"
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
)

// Counters tallies behavior outcomes since the last reset.
type Counters struct {
	Drinks        int
	Meals         int
	FailedMeals   int // bush emptied while the creature was paused
	ClaimsRefused int // arrivals at a resource whose claim was refused, once per wait
}

// BehaviorSystem runs one decision step per creature per tick.
//
// Priority order each tick:
//  1. paused: hold still until the wall-clock deadline passes
//  2. pending action: apply drink/eat, then head for a move-away point
//  3. move-away point: walk to it before making new decisions
//  4. thirst below threshold: seek water
//  5. hunger below threshold: seek food
//  6. otherwise wander (or idle when the creature cannot move)
//
// Position is clamped to the world bounds at the end of every step.
type BehaviorSystem struct {
	cfg           *config.BehaviorConfig
	pause         time.Duration
	width, height float64

	clock     *clock.Bridge
	creatures *Creatures
	index     *ResourceIndex
	steer     *Steering
	grid      *SpatialGrid

	neighbors []Neighbor
	counters  Counters
}

// NewBehaviorSystem creates the behavior system.
func NewBehaviorSystem(cfg *config.Config, bridge *clock.Bridge, creatures *Creatures, index *ResourceIndex, steer *Steering) *BehaviorSystem {
	return &BehaviorSystem{
		cfg:       &cfg.Behavior,
		pause:     cfg.Derived.Pause,
		width:     cfg.Derived.WorldW,
		height:    cfg.Derived.WorldH,
		clock:     bridge,
		creatures: creatures,
		index:     index,
		steer:     steer,
		grid:      NewSpatialGrid(cfg.Derived.WorldW, cfg.Derived.WorldH, cfg.Steering.GridCellSize),
		neighbors: make([]Neighbor, 0, 64),
	}
}

// Update runs one decision step for every creature. The wall clock is
// sampled once per call, so all creatures see the same "now".
func (s *BehaviorSystem) Update() {
	now := s.clock.WallNow()

	s.grid.Clear()
	s.creatures.Each(func(e ecs.Entity, pos *components.Position, _ *components.Velocity, _ *components.Vitals, _ *components.Traits, _ *components.Behavior) {
		s.grid.Insert(e, pos.X, pos.Y)
	})

	s.creatures.Each(func(e ecs.Entity, pos *components.Position, vel *components.Velocity, vit *components.Vitals, tr *components.Traits, beh *components.Behavior) {
		s.step(e, pos, vel, vit, tr, beh, now)
		ClampToBounds(pos, s.width, s.height)
	})
}

// Counters returns the tallies since the last ResetCounters.
func (s *BehaviorSystem) Counters() Counters {
	return s.counters
}

// ResetCounters zeroes the tallies.
func (s *BehaviorSystem) ResetCounters() {
	s.counters = Counters{}
}

func (s *BehaviorSystem) step(e ecs.Entity, pos *components.Position, vel *components.Velocity, vit *components.Vitals, tr *components.Traits, beh *components.Behavior, now time.Time) {
	if now.Before(beh.PausedUntil) {
		beh.State = components.StatePaused
		vel.X, vel.Y = 0, 0
		return
	}

	if beh.Pending != components.ActionNone {
		s.finishPause(e, pos, vit, tr, beh)
		return
	}

	if beh.Target.Kind == components.TargetPoint {
		s.moveAway(e, pos, vel, tr, beh)
		return
	}

	switch {
	case vit.Thirst < s.cfg.ThirstThreshold:
		beh.State = components.StateSeekWater
		s.seek(e, pos, vel, tr, beh, components.ResourceWater, now)
	case vit.Hunger < s.cfg.HungerThreshold:
		beh.State = components.StateSeekFood
		s.seek(e, pos, vel, tr, beh, components.ResourceBush, now)
	default:
		s.wander(e, pos, vel, tr, beh)
	}
}

// seek keeps or replaces the creature's target of the given kind and moves
// toward it, starting a consumption pause on arrival.
func (s *BehaviorSystem) seek(e ecs.Entity, pos *components.Position, vel *components.Velocity, tr *components.Traits, beh *components.Behavior, kind components.ResourceKind, now time.Time) {
	if !s.keepTarget(e, pos, beh, kind) {
		next, ok := s.index.Select(kind, pos.X, pos.Y, e)
		if !ok {
			s.wander(e, pos, vel, tr, beh)
			return
		}
		s.retarget(e, beh, components.ResourceTarget(kind, next))
		if kind == components.ResourceBush {
			// Berries are claimed before traveling; a refused claim means
			// every bush is spoken for and the creature heads for the
			// nearest one to wait.
			if _, res, ok := s.index.Get(next); ok {
				Claim(res, e)
			}
		}
	}

	target, ok := s.index.Resolve(beh.Target)
	if !ok {
		s.retarget(e, beh, components.NoTarget())
		return
	}

	// Water points are claimed en route, as soon as they are free.
	if target.Res.IsWater() && FreeCapacity(target.Res) > 0 {
		Claim(target.Res, e)
	}

	switch s.steer.MoveTowards(pos, vel, tr.Speed, tr.Radius(), target) {
	case ArrivedDrink:
		s.beginPause(e, vel, beh, target.Res, components.ActionDrink, now)
	case ArrivedEat:
		s.beginPause(e, vel, beh, target.Res, components.ActionEat, now)
	case ArrivedNone, TargetLost:
		s.retarget(e, beh, components.NoTarget())
	}
}

// keepTarget reports whether the current target is still worth pursuing
// for a creature seeking kind. It may claim the target as a side effect
// when capacity has freed up.
func (s *BehaviorSystem) keepTarget(e ecs.Entity, pos *components.Position, beh *components.Behavior, kind components.ResourceKind) bool {
	want := components.ResourceTarget(kind, beh.Target.Entity).Kind
	if beh.Target.Kind != want {
		return false
	}
	_, res, ok := s.index.Get(beh.Target.Entity)
	if !ok {
		return false
	}

	if res.IsWater() {
		// Re-seek when another creature holds the slot.
		return Holds(res, e) || FreeCapacity(res) > 0
	}

	if !res.HasBerries() {
		return false
	}
	if Claim(res, e) {
		return true
	}
	// Fully contended: switch to a bush with room, otherwise keep waiting here.
	_, free := s.index.NearestFree(components.ResourceBush, pos.X, pos.Y)
	return !free
}

// beginPause claims the resource (if not already held) and starts the
// wall-clock consumption pause. A refused claim leaves the creature
// waiting in place.
func (s *BehaviorSystem) beginPause(e ecs.Entity, vel *components.Velocity, beh *components.Behavior, res *components.Resource, action components.Action, now time.Time) {
	vel.X, vel.Y = 0, 0
	if !Claim(res, e) {
		if beh.Refused != beh.Target {
			s.counters.ClaimsRefused++
			beh.Refused = beh.Target
		}
		return
	}
	beh.Refused = components.NoTarget()
	beh.PausedUntil = now.Add(s.pause)
	beh.Pending = action
	beh.State = components.StatePaused
}

// finishPause applies the pending action once the pause has elapsed, then
// sends the creature toward a point a few body lengths away so it does not
// immediately re-arrive.
func (s *BehaviorSystem) finishPause(e ecs.Entity, pos *components.Position, vit *components.Vitals, tr *components.Traits, beh *components.Behavior) {
	target, ok := s.index.Resolve(beh.Target)
	if ok && target.Res == nil {
		ok = false
	}

	switch beh.Pending {
	case components.ActionDrink:
		if ok && Consume(target.Res, e) {
			RestoreThirst(vit, s.cfg.DrinkRestore, s.cfg.VitalsMax)
			s.counters.Drinks++
		}
	case components.ActionEat:
		if ok && Consume(target.Res, e) {
			RestoreHunger(vit, s.cfg.EatRestore, s.cfg.VitalsMax)
			s.counters.Meals++
		} else {
			s.counters.FailedMeals++
		}
	}
	beh.Pending = components.ActionNone

	away := s.steer.MoveAwayPoint(*pos, tr.Radius(), s.cfg.MoveAwayLengths)
	ClampToBounds(&away, s.width, s.height)
	s.retarget(e, beh, components.PointTarget(away.X, away.Y))
	beh.State = components.StateWander
}

// moveAway walks toward the synthesized move-away point and clears it on
// arrival.
func (s *BehaviorSystem) moveAway(e ecs.Entity, pos *components.Position, vel *components.Velocity, tr *components.Traits, beh *components.Behavior) {
	beh.State = components.StateWander
	target, ok := s.index.Resolve(beh.Target)
	if !ok || tr.Speed <= 0 {
		s.retarget(e, beh, components.NoTarget())
		return
	}
	if s.steer.MoveTowards(pos, vel, tr.Speed, tr.Radius(), target) != EnRoute {
		s.retarget(e, beh, components.NoTarget())
	}
}

// wander drops any target and applies random steering with crowd separation.
func (s *BehaviorSystem) wander(e ecs.Entity, pos *components.Position, vel *components.Velocity, tr *components.Traits, beh *components.Behavior) {
	s.retarget(e, beh, components.NoTarget())

	if tr.Speed <= 0 {
		beh.State = components.StateIdle
		vel.X, vel.Y = 0, 0
		return
	}

	beh.State = components.StateWander
	s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], pos.X, pos.Y, s.steer.SeparationRadius(), e, s.creatures.PositionMap())
	s.steer.MoveRandom(pos, vel, tr.Speed, s.neighbors)
}

// retarget switches the creature's target, releasing any claim held on
// the old one. Re-selecting the current target is a no-op.
func (s *BehaviorSystem) retarget(e ecs.Entity, beh *components.Behavior, t components.TargetRef) {
	if beh.Target == t {
		return
	}
	s.index.ReleaseTarget(beh.Target, e)
	beh.Target = t
	beh.Refused = components.NoTarget()
}
