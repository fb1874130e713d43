package game

import rl "github.com/gen2brain/raylib-go/raylib"

// Camera pan speed in screen pixels per frame, and zoom step per wheel notch.
const (
	panSpeed  = 8
	zoomSteps = 0.1
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetStepsPerUpdate(g.stepsPerUpdate - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetStepsPerUpdate(g.stepsPerUpdate + 1)
	}

	g.handleCameraInput()

	mouse := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	mx, my := float64(wx), float64(wy)
	g.inspector.Hover(g.Creatures(), mx, my)

	// Clicks on the HUD belong to raygui.
	if g.hud.Contains(mouse) {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if _, ok := g.SpawnCreature(mx, my); !ok {
			logSpawnRefused("creature", g.cfg.Population.MaxCreatures)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		if !g.SpawnBush(mx, my) {
			logSpawnRefused("bush", g.cfg.Population.MaxBushes)
		}
	}
}

// handleCameraInput pans with the arrow keys, zooms with the mouse wheel
// and resets with Home.
func (g *Game) handleCameraInput() {
	g.camera.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))

	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*zoomSteps)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
