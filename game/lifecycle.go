package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// spawnInitialWorld creates the lake, the initial bushes and the initial
// creatures. The lake comes first so bush placement can avoid it.
func (g *Game) spawnInitialWorld() {
	g.spawnLake()

	for range g.cfg.Population.InitialBushes {
		x, y := g.placement.Scatter(g.nearLake)
		if !g.SpawnBush(x, y) {
			break
		}
	}

	w, h := g.cfg.Derived.WorldW, g.cfg.Derived.WorldH
	for range g.cfg.Population.InitialCreatures {
		if _, ok := g.SpawnCreature(g.rng.Float64()*w, g.rng.Float64()*h); !ok {
			break
		}
	}
}

// spawnLake creates one water point per lake polygon vertex.
func (g *Game) spawnLake() {
	for _, p := range g.lakePolygon() {
		g.index.AddWater(p.X, p.Y, g.cfg.Lake.Radius)
	}
}

// lakePolygon returns the lake vertices in world coordinates.
func (g *Game) lakePolygon() []components.Position {
	lake := &g.cfg.Lake
	out := make([]components.Position, len(lake.Points))
	for i, p := range lake.Points {
		out[i] = components.Position{X: lake.CenterX + p[0], Y: lake.CenterY + p[1]}
	}
	return out
}

// nearLake reports whether a bush at (x, y) would sit in or at the edge of
// the lake.
func (g *Game) nearLake(x, y float64) bool {
	poly := g.lakePolygon()
	if pointInPolygon(x, y, poly) {
		return true
	}
	reach := g.cfg.Lake.Radius + 2*g.cfg.Bush.Radius
	for _, p := range poly {
		if distanceSq(x, y, p.X, p.Y) < reach*reach {
			return true
		}
	}
	return false
}

// SpawnCreature adds a creature with a random name, color and diet and the
// configured default vitals and traits. It returns false once the creature
// cap is reached.
func (g *Game) SpawnCreature(x, y float64) (ecs.Entity, bool) {
	if g.creatures.Count() >= g.cfg.Population.MaxCreatures {
		return ecs.Entity{}, false
	}

	cc := &g.cfg.Creature
	traits := components.Traits{
		Name:     g.randomName(),
		Speed:    cc.Speed,
		Size:     cc.Size,
		Strength: cc.Strength,
		Color:    g.randomColor(),
		Diet:     g.randomDiet(),
	}
	vitals := components.Vitals{Energy: cc.Energy, Thirst: cc.Thirst, Hunger: cc.Hunger}

	x, y = clampToWorld(x, y, g.cfg.Derived.WorldW, g.cfg.Derived.WorldH)
	e := g.creatures.Spawn(x, y, traits, vitals, g.Tick())
	g.vitals.Track(e)
	return e, true
}

// SpawnBush adds a bush with the configured berries. It returns false once
// the bush cap is reached.
func (g *Game) SpawnBush(x, y float64) bool {
	if len(g.index.Bushes()) >= g.cfg.Population.MaxBushes {
		return false
	}
	b := &g.cfg.Bush
	x, y = clampToWorld(x, y, g.cfg.Derived.WorldW, g.cfg.Derived.WorldH)
	g.index.AddBush(x, y, b.Berries, b.MaxBerries, b.RegrowRate, b.Radius)
	return true
}

func (g *Game) randomName() string {
	names := g.cfg.Population.Names
	return names[g.rng.Intn(len(names))]
}

func (g *Game) randomColor() components.Color {
	return components.Color{
		R: uint8(g.rng.Intn(256)),
		G: uint8(g.rng.Intn(256)),
		B: uint8(g.rng.Intn(256)),
	}
}

func (g *Game) randomDiet() components.Diet {
	diets := g.cfg.Creature.Diets
	if len(diets) == 0 {
		return components.DietHerbivore
	}
	return components.ParseDiet(diets[g.rng.Intn(len(diets))])
}

// logSpawnRefused reports a manual spawn that hit a population cap.
func logSpawnRefused(kind string, limit int) {
	slog.Warn("spawn refused, population cap reached", "kind", kind, "max", limit)
}
