// Package renderer draws the meadow: the lake, bushes with their berries
// and the creatures, from read-only views.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
)

// Palette holds scene colors.
type Palette struct {
	Ground    rl.Color
	LakeFill  rl.Color
	LakeEdge  rl.Color
	Water     rl.Color
	Bush      rl.Color
	BushEmpty rl.Color
	Berry     rl.Color
	Claim     rl.Color
	Paused    rl.Color
	Highlight rl.Color
}

// DefaultPalette returns the default scene colors.
func DefaultPalette() Palette {
	return Palette{
		Ground:    rl.Color{R: 34, G: 52, B: 30, A: 255},
		LakeFill:  rl.Color{R: 40, G: 90, B: 160, A: 255},
		LakeEdge:  rl.Color{R: 90, G: 140, B: 210, A: 255},
		Water:     rl.Color{R: 120, G: 180, B: 240, A: 255},
		Bush:      rl.Color{R: 40, G: 130, B: 50, A: 255},
		BushEmpty: rl.Color{R: 90, G: 100, B: 60, A: 255},
		Berry:     rl.Color{R: 200, G: 40, B: 60, A: 255},
		Claim:     rl.Color{R: 255, G: 255, B: 255, A: 120},
		Paused:    rl.White,
		Highlight: rl.Yellow,
	}
}

// Scene draws the world.
type Scene struct {
	Palette Palette
	lake    *Lake
}

// NewScene creates a scene for the configured lake.
func NewScene(cfg *config.Config) *Scene {
	return &Scene{
		Palette: DefaultPalette(),
		lake:    NewLake(&cfg.Lake),
	}
}

// Draw clears the screen and draws water, bushes and creatures in that order.
func (s *Scene) Draw(water, bushes []systems.ResourceView, creatures []systems.CreatureView) {
	rl.ClearBackground(s.Palette.Ground)

	s.lake.Draw(s.Palette.LakeFill, s.Palette.LakeEdge)
	for _, w := range water {
		s.drawWater(w)
	}
	for _, b := range bushes {
		s.drawBush(b)
	}
	for _, c := range creatures {
		s.drawCreature(c)
	}
}

// DrawHighlight rings a creature, e.g. the one under the cursor.
func (s *Scene) DrawHighlight(c systems.CreatureView) {
	rl.DrawCircleLines(int32(c.X), int32(c.Y), float32(c.Radius)+3, s.Palette.Highlight)
}

func (s *Scene) drawWater(w systems.ResourceView) {
	center := rl.Vector2{X: float32(w.X), Y: float32(w.Y)}
	rl.DrawCircleV(center, float32(w.Radius)/2, s.Palette.Water)
	if w.Claims > 0 {
		rl.DrawCircleLines(int32(w.X), int32(w.Y), float32(w.Radius), s.Palette.Claim)
	}
}

func (s *Scene) drawBush(b systems.ResourceView) {
	center := rl.Vector2{X: float32(b.X), Y: float32(b.Y)}
	color := s.Palette.Bush
	if b.Quantity == 0 {
		color = s.Palette.BushEmpty
	}
	rl.DrawCircleV(center, float32(b.Radius), color)

	for _, p := range BerryOffsets(b.Quantity, b.Radius*0.5) {
		rl.DrawCircleV(rl.Vector2{X: center.X + p.X, Y: center.Y + p.Y}, 1.5, s.Palette.Berry)
	}
	if b.Claims > 0 {
		rl.DrawCircleLines(int32(b.X), int32(b.Y), float32(b.Radius)+2, s.Palette.Claim)
	}
}

func (s *Scene) drawCreature(c systems.CreatureView) {
	center := rl.Vector2{X: float32(c.X), Y: float32(c.Y)}
	rl.DrawCircleV(center, float32(c.Radius), rl.Color{R: c.Color.R, G: c.Color.G, B: c.Color.B, A: 255})
	if c.State == components.StatePaused {
		rl.DrawCircleLines(int32(c.X), int32(c.Y), float32(c.Radius)+1, s.Palette.Paused)
	}
}

// BerryOffsets spreads n berries evenly on a circle of radius r.
func BerryOffsets(n int, r float64) []rl.Vector2 {
	if n <= 0 {
		return nil
	}
	out := make([]rl.Vector2, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = rl.Vector2{X: float32(r * math.Cos(a)), Y: float32(r * math.Sin(a))}
	}
	return out
}
