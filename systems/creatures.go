package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// Creatures owns the creature archetype: creation, lookup and iteration.
type Creatures struct {
	world  *ecs.World
	mapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Vitals,
		components.Traits,
		components.Behavior,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Vitals,
		components.Traits,
		components.Behavior,
	]

	posMap *ecs.Map[components.Position]
	vitMap *ecs.Map[components.Vitals]
	trMap  *ecs.Map[components.Traits]
	behMap *ecs.Map[components.Behavior]

	count int
}

// NewCreatures creates the creature store over world.
func NewCreatures(world *ecs.World) *Creatures {
	return &Creatures{
		world: world,
		mapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Vitals,
			components.Traits,
			components.Behavior,
		](world),
		filter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Vitals,
			components.Traits,
			components.Behavior,
		](world),
		posMap: ecs.NewMap[components.Position](world),
		vitMap: ecs.NewMap[components.Vitals](world),
		trMap:  ecs.NewMap[components.Traits](world),
		behMap: ecs.NewMap[components.Behavior](world),
	}
}

// Spawn creates a creature at (x, y). Must not be called while a query is
// being iterated.
func (c *Creatures) Spawn(x, y float64, traits components.Traits, vitals components.Vitals, bornTick uint64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	beh := components.Behavior{State: components.StateIdle, BornTick: bornTick}
	c.count++
	return c.mapper.NewEntity(&pos, &vel, &vitals, &traits, &beh)
}

// Count returns the number of creatures.
func (c *Creatures) Count() int {
	return c.count
}

// Alive reports whether e is a live creature.
func (c *Creatures) Alive(e ecs.Entity) bool {
	return c.world.Alive(e) && c.behMap.Has(e)
}

// Each calls fn for every creature. Structural changes (Spawn) are not
// allowed inside fn.
func (c *Creatures) Each(fn func(e ecs.Entity, pos *components.Position, vel *components.Velocity, vit *components.Vitals, tr *components.Traits, beh *components.Behavior)) {
	query := c.filter.Query()
	for query.Next() {
		pos, vel, vit, tr, beh := query.Get()
		fn(query.Entity(), pos, vel, vit, tr, beh)
	}
}

// Position returns the position of creature e.
func (c *Creatures) Position(e ecs.Entity) *components.Position {
	return c.posMap.Get(e)
}

// Vitals returns the vitals of creature e.
func (c *Creatures) Vitals(e ecs.Entity) *components.Vitals {
	return c.vitMap.Get(e)
}

// Traits returns the traits of creature e.
func (c *Creatures) Traits(e ecs.Entity) *components.Traits {
	return c.trMap.Get(e)
}

// Behavior returns the behavior state of creature e.
func (c *Creatures) Behavior(e ecs.Entity) *components.Behavior {
	return c.behMap.Get(e)
}

// PositionMap exposes the position mapper for spatial queries.
func (c *Creatures) PositionMap() *ecs.Map[components.Position] {
	return c.posMap
}
