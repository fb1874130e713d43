package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/ui"
)

// Draw renders the world, the inspector and the HUD, and applies any HUD
// control changes.
func (g *Game) Draw() {
	creatures := g.Creatures()

	rl.BeginDrawing()
	rl.BeginMode2D(g.camera2D())
	g.scene.Draw(g.WaterPoints(), g.Bushes(), creatures)
	if c, ok := g.inspector.Hovered(); ok {
		g.scene.DrawHighlight(c)
	}
	rl.EndMode2D()
	g.inspector.Draw(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))

	action := g.hud.Draw(ui.HUDData{
		Tick:           g.Tick(),
		Creatures:      g.creatures.Count(),
		Bushes:         len(g.index.Bushes()),
		Berries:        g.index.Berries(),
		Stats:          g.lastStats,
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
	})
	rl.EndDrawing()

	if action.TogglePause {
		g.paused = !g.paused
	}
	if action.StepsPerUpdate != 0 {
		g.SetStepsPerUpdate(action.StepsPerUpdate)
	}
}

// camera2D converts the game camera to raylib's world transform.
func (g *Game) camera2D() rl.Camera2D {
	c := g.camera
	return rl.Camera2D{
		Offset: rl.Vector2{X: c.ViewportW / 2, Y: c.ViewportH / 2},
		Target: rl.Vector2{X: c.X, Y: c.Y},
		Zoom:   c.Zoom,
	}
}
