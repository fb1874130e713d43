// Package components defines ECS components for the simulation.
package components

import (
	"math"
	"time"

	"github.com/mlange-42/ark/ecs"
)

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity in world units per tick.
type Velocity struct {
	X, Y float64
}

// Vitals holds the three draining needs of a creature.
// Values start at 100 and are capped there on restore; there is no floor.
type Vitals struct {
	Energy int
	Thirst int
	Hunger int
}

// Color is an RGB display color.
type Color struct {
	R, G, B uint8
}

// Diet is cosmetic for now; behavior does not branch on it.
type Diet uint8

const (
	DietHerbivore Diet = iota
	DietCarnivore
	DietOmnivore
)

// String returns the display name for a Diet.
func (d Diet) String() string {
	switch d {
	case DietHerbivore:
		return "herbivore"
	case DietCarnivore:
		return "carnivore"
	case DietOmnivore:
		return "omnivore"
	default:
		return "unknown"
	}
}

// ParseDiet maps a config name to a Diet. Unknown names are herbivores.
func ParseDiet(name string) Diet {
	switch name {
	case "carnivore":
		return DietCarnivore
	case "omnivore":
		return DietOmnivore
	default:
		return DietHerbivore
	}
}

// Traits holds the fixed physical properties of a creature.
type Traits struct {
	Name     string // display only, not unique
	Speed    float64
	Size     float64
	Strength float64
	Color    Color
	Diet     Diet
}

// Radius is the touch radius used for arrival checks and drawing.
func (t *Traits) Radius() float64 {
	return math.Max(1, t.Size/10)
}

// State is the behavior state a creature ended its last tick in.
type State uint8

const (
	StateIdle State = iota // stopped with vitals satisfied
	StatePaused
	StateSeekWater
	StateSeekFood
	StateWander
)

// String returns the display name for a State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePaused:
		return "paused"
	case StateSeekWater:
		return "seek_water"
	case StateSeekFood:
		return "seek_food"
	case StateWander:
		return "wander"
	default:
		return "unknown"
	}
}

// Action is the effect applied once a consumption pause elapses.
type Action uint8

const (
	ActionNone Action = iota
	ActionEat
	ActionDrink
)

// String returns the display name for an Action.
func (a Action) String() string {
	switch a {
	case ActionEat:
		return "eat"
	case ActionDrink:
		return "drink"
	default:
		return "none"
	}
}

// TargetKind discriminates TargetRef.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetBush
	TargetWater
	TargetPoint // synthesized move-away point
)

// TargetRef is what a creature is currently steering toward.
// Resource targets are resolved through the ECS on every use, never cached.
type TargetRef struct {
	Kind   TargetKind
	Entity ecs.Entity // valid for TargetBush and TargetWater
	Point  Position   // valid for TargetPoint
}

// NoTarget returns the empty target.
func NoTarget() TargetRef {
	return TargetRef{}
}

// ResourceTarget returns a target referring to a resource entity.
func ResourceTarget(kind ResourceKind, e ecs.Entity) TargetRef {
	if kind == ResourceWater {
		return TargetRef{Kind: TargetWater, Entity: e}
	}
	return TargetRef{Kind: TargetBush, Entity: e}
}

// PointTarget returns a target at a fixed point.
func PointTarget(x, y float64) TargetRef {
	return TargetRef{Kind: TargetPoint, Point: Position{X: x, Y: y}}
}

// IsNone reports whether the target is empty.
func (t TargetRef) IsNone() bool {
	return t.Kind == TargetNone
}

// IsResource reports whether the target refers to a resource entity.
func (t TargetRef) IsResource() bool {
	return t.Kind == TargetBush || t.Kind == TargetWater
}

// Behavior holds per-creature decision state.
type Behavior struct {
	State       State
	Target      TargetRef
	PausedUntil time.Time // wall-clock deadline of the current consumption pause
	Pending     Action    // applied once PausedUntil has passed
	Refused     TargetRef // target whose claim was refused on arrival, until it changes
	BornTick    uint64
}

// ResourceKind distinguishes bushes from water points.
type ResourceKind uint8

const (
	ResourceBush ResourceKind = iota
	ResourceWater
)

// String returns the display name for a ResourceKind.
func (k ResourceKind) String() string {
	if k == ResourceWater {
		return "water"
	}
	return "bush"
}

// Resource is a bush or a water point.
// Bushes hold a finite berry count and a multi-slot ledger; water points
// have unlimited supply and a ledger of at most one creature.
type Resource struct {
	Kind        ResourceKind
	Quantity    int // berries; ignored for water
	MaxQuantity int
	RegrowRate  float64
	Radius      float64
	Reserved    []ecs.Entity // creatures holding an unconsumed claim
}

// IsWater reports whether the resource is a water point.
func (r *Resource) IsWater() bool {
	return r.Kind == ResourceWater
}

// HasBerries reports whether a bush has at least one berry.
func (r *Resource) HasBerries() bool {
	return r.Kind == ResourceBush && r.Quantity > 0
}
