package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// ResourceIndex is the lookup table for bushes and water points.
// It keeps resources in creation order so nearest-resource ties are broken
// the same way every run.
type ResourceIndex struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Resource]
	posMap *ecs.Map[components.Position]
	resMap *ecs.Map[components.Resource]

	defaultRadius float64
	bushes        []ecs.Entity
	water         []ecs.Entity
}

// NewResourceIndex creates an empty index over world.
// defaultRadius is used for point targets and resources with no radius.
func NewResourceIndex(world *ecs.World, defaultRadius float64) *ResourceIndex {
	return &ResourceIndex{
		world:         world,
		mapper:        ecs.NewMap2[components.Position, components.Resource](world),
		posMap:        ecs.NewMap[components.Position](world),
		resMap:        ecs.NewMap[components.Resource](world),
		defaultRadius: defaultRadius,
	}
}

// AddBush creates a bush entity.
func (ix *ResourceIndex) AddBush(x, y float64, berries, maxBerries int, regrowRate, radius float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	res := components.Resource{
		Kind:        components.ResourceBush,
		Quantity:    berries,
		MaxQuantity: maxBerries,
		RegrowRate:  regrowRate,
		Radius:      radius,
	}
	e := ix.mapper.NewEntity(&pos, &res)
	ix.bushes = append(ix.bushes, e)
	return e
}

// AddWater creates a water point entity.
func (ix *ResourceIndex) AddWater(x, y, radius float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	res := components.Resource{
		Kind:   components.ResourceWater,
		Radius: radius,
	}
	e := ix.mapper.NewEntity(&pos, &res)
	ix.water = append(ix.water, e)
	return e
}

// Bushes returns bush entities in creation order. Do not modify.
func (ix *ResourceIndex) Bushes() []ecs.Entity {
	return ix.bushes
}

// Water returns water point entities in creation order. Do not modify.
func (ix *ResourceIndex) Water() []ecs.Entity {
	return ix.water
}

// Get returns the position and resource component of e.
func (ix *ResourceIndex) Get(e ecs.Entity) (*components.Position, *components.Resource, bool) {
	if !ix.world.Alive(e) || !ix.resMap.Has(e) {
		return nil, nil, false
	}
	return ix.posMap.Get(e), ix.resMap.Get(e), true
}

// Resolved is a target resolved to current coordinates.
type Resolved struct {
	X, Y   float64
	Radius float64
	Res    *components.Resource // nil for point targets
}

// Resolve reads a target's current coordinates. It fails for empty targets
// and for resource targets that no longer resolve to a resource of the
// expected kind.
func (ix *ResourceIndex) Resolve(t components.TargetRef) (Resolved, bool) {
	switch t.Kind {
	case components.TargetPoint:
		return Resolved{X: t.Point.X, Y: t.Point.Y, Radius: ix.defaultRadius}, true
	case components.TargetBush, components.TargetWater:
		pos, res, ok := ix.Get(t.Entity)
		if !ok || res.IsWater() != (t.Kind == components.TargetWater) {
			return Resolved{}, false
		}
		radius := res.Radius
		if radius <= 0 {
			radius = ix.defaultRadius
		}
		return Resolved{X: pos.X, Y: pos.Y, Radius: radius, Res: res}, true
	default:
		return Resolved{}, false
	}
}

// Select picks the resource of the given kind an agent at (x, y) should head
// for: the nearest one with free capacity (or already claimed by agent), else
// the nearest one overall. Ties go to the earlier-created resource.
func (ix *ResourceIndex) Select(kind components.ResourceKind, x, y float64, agent ecs.Entity) (ecs.Entity, bool) {
	if e, ok := ix.nearest(kind, x, y, func(res *components.Resource) bool {
		return FreeCapacity(res) > 0 || Holds(res, agent)
	}); ok {
		return e, true
	}
	return ix.nearest(kind, x, y, nil)
}

// NearestFree returns the nearest resource of the given kind with free capacity.
func (ix *ResourceIndex) NearestFree(kind components.ResourceKind, x, y float64) (ecs.Entity, bool) {
	return ix.nearest(kind, x, y, func(res *components.Resource) bool {
		return FreeCapacity(res) > 0
	})
}

func (ix *ResourceIndex) nearest(kind components.ResourceKind, x, y float64, accept func(*components.Resource) bool) (ecs.Entity, bool) {
	list := ix.bushes
	if kind == components.ResourceWater {
		list = ix.water
	}

	var best ecs.Entity
	bestDistSq := math.Inf(1)
	found := false
	for _, e := range list {
		pos, res, ok := ix.Get(e)
		if !ok {
			continue
		}
		if accept != nil && !accept(res) {
			continue
		}
		d := distanceSq(x, y, pos.X, pos.Y)
		if d < bestDistSq {
			best, bestDistSq, found = e, d, true
		}
	}
	return best, found
}

// ReleaseTarget drops agent's claim on whatever resource t refers to.
func (ix *ResourceIndex) ReleaseTarget(t components.TargetRef, agent ecs.Entity) {
	if !t.IsResource() {
		return
	}
	if _, res, ok := ix.Get(t.Entity); ok {
		Release(res, agent)
	}
}
