package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/config"
)

// Lake is the water polygon drawn under the water points.
type Lake struct {
	fan     []rl.Vector2 // center followed by the outline, closed
	outline []rl.Vector2 // closed outline
}

// NewLake builds the lake geometry from the lake config. Vertices are
// reordered so the fill winds counter-clockwise on screen.
func NewLake(cfg *config.LakeConfig) *Lake {
	pts := make([]rl.Vector2, len(cfg.Points))
	for i, p := range cfg.Points {
		pts[i] = rl.Vector2{X: float32(cfg.CenterX + p[0]), Y: float32(cfg.CenterY + p[1])}
	}
	pts = ScreenCCW(pts)

	l := &Lake{}
	if len(pts) < 3 {
		return l
	}
	l.outline = append(append(l.outline, pts...), pts[0])
	l.fan = append([]rl.Vector2{{X: float32(cfg.CenterX), Y: float32(cfg.CenterY)}}, l.outline...)
	return l
}

// Draw fills and outlines the lake.
func (l *Lake) Draw(fill, edge rl.Color) {
	if len(l.fan) == 0 {
		return
	}
	rl.DrawTriangleFan(l.fan, fill)
	rl.DrawLineStrip(l.outline, edge)
}

// ScreenCCW returns pts ordered counter-clockwise as seen on screen
// (y pointing down), reversing a copy if needed.
func ScreenCCW(pts []rl.Vector2) []rl.Vector2 {
	out := append([]rl.Vector2(nil), pts...)
	if signedArea(out) > 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// signedArea is the shoelace area in raw coordinates. With y down, a
// negative value means counter-clockwise on screen.
func signedArea(pts []rl.Vector2) float32 {
	var sum float32
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}
