package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// CreatureView is a read-only copy of one creature for the renderer and
// the stats tracker.
type CreatureView struct {
	Entity ecs.Entity
	Name   string
	X, Y   float64
	Radius float64
	Speed  float64 // trait, not current velocity
	Size   float64
	Moving float64 // current velocity magnitude
	Color  components.Color
	Diet   components.Diet
	State  components.State
	Target components.TargetKind
	Vitals components.Vitals
}

// ResourceView is a read-only copy of one bush or water point.
type ResourceView struct {
	Entity      ecs.Entity
	Kind        components.ResourceKind
	X, Y        float64
	Radius      float64
	Quantity    int
	MaxQuantity int
	Claims      int
}

// Views appends a snapshot of every creature to dst and returns it.
func (c *Creatures) Views(dst []CreatureView) []CreatureView {
	dst = dst[:0]
	c.Each(func(e ecs.Entity, pos *components.Position, vel *components.Velocity, vit *components.Vitals, tr *components.Traits, beh *components.Behavior) {
		dst = append(dst, CreatureView{
			Entity: e,
			Name:   tr.Name,
			X:      pos.X,
			Y:      pos.Y,
			Radius: tr.Radius(),
			Speed:  tr.Speed,
			Size:   tr.Size,
			Moving: math.Hypot(vel.X, vel.Y),
			Color:  tr.Color,
			Diet:   tr.Diet,
			State:  beh.State,
			Target: beh.Target.Kind,
			Vitals: *vit,
		})
	})
	return dst
}

// BushViews appends a snapshot of every bush to dst in creation order.
func (ix *ResourceIndex) BushViews(dst []ResourceView) []ResourceView {
	return ix.views(dst[:0], ix.bushes)
}

// WaterViews appends a snapshot of every water point to dst in creation order.
func (ix *ResourceIndex) WaterViews(dst []ResourceView) []ResourceView {
	return ix.views(dst[:0], ix.water)
}

func (ix *ResourceIndex) views(dst []ResourceView, entities []ecs.Entity) []ResourceView {
	for _, e := range entities {
		pos, res, ok := ix.Get(e)
		if !ok {
			continue
		}
		radius := res.Radius
		if radius <= 0 {
			radius = ix.defaultRadius
		}
		dst = append(dst, ResourceView{
			Entity:      e,
			Kind:        res.Kind,
			X:           pos.X,
			Y:           pos.Y,
			Radius:      radius,
			Quantity:    res.Quantity,
			MaxQuantity: res.MaxQuantity,
			Claims:      len(res.Reserved),
		})
	}
	return dst
}

// Berries returns the number of berries left on all bushes.
func (ix *ResourceIndex) Berries() int {
	total := 0
	for _, e := range ix.bushes {
		if _, res, ok := ix.Get(e); ok {
			total += res.Quantity
		}
	}
	return total
}
