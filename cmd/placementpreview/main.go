// Placement preview tool - shows the bush placement noise field and a
// sample scatter, with sliders for the placement parameters.
//
// Usage: go run ./cmd/placementpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
)

const (
	panelWidth = 300
	gridStep   = 4 // world units per preview pixel
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	worldW, worldH := cfg.Derived.WorldW, cfg.Derived.WorldH
	gridW, gridH := int(worldW)/gridStep, int(worldH)/gridStep

	rl.InitWindow(int32(worldW)+panelWidth+20, int32(worldH)+20, "Bush Placement Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	params := cfg.Placement
	var seed int64 = 1
	var sites [][2]float64
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			placement := systems.NewPlacement(&params, seed, rand.New(rand.NewSource(seed)), worldW, worldH)
			updateTexture(texture, placement, gridW, gridH, params.Threshold)
			sites = scatter(placement, cfg.Population.InitialBushes)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridW), Height: float32(gridH)},
			rl.Rectangle{X: 10, Y: 10, Width: float32(worldW), Height: float32(worldH)},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		for _, s := range sites {
			rl.DrawCircle(int32(s[0])+10, int32(s[1])+10, float32(cfg.Bush.Radius), rl.Red)
		}
		rl.DrawRectangleLines(10, 10, int32(worldW), int32(worldH), rl.DarkGray)

		panelX := float32(worldW) + 20
		panelY := float32(10)
		rl.DrawText("Bush Placement", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if v, changed := slider(panelX, &panelY, "Noise scale (world units)", float32(params.NoiseScale), 10, 400, "%.0f"); changed {
			params.NoiseScale = float64(v)
			needsRegen = true
		}
		if v, changed := slider(panelX, &panelY, "Threshold", float32(params.Threshold), 0, 1, "%.2f"); changed {
			params.Threshold = float64(v)
			needsRegen = true
		}
		if v, changed := slider(panelX, &panelY, "Max tries", float32(params.MaxTries), 1, 128, "%.0f"); changed {
			params.MaxTries = int(v)
			needsRegen = true
		}
		if v, changed := slider(panelX, &panelY, "Seed", float32(seed), 1, 9999, "%.0f"); changed {
			seed = int64(v)
			needsRegen = true
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(1, 9999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset") {
			params = cfg.Placement
			needsRegen = true
		}
		panelY += 50

		yaml := placementYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		rl.DrawText(yaml, int32(panelX), int32(panelY)+22, 14, rl.Gray)
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(worldH)-10, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider and advances y past it.
func slider(x float32, y *float32, label string, value, minVal, maxVal float32, format string) (float32, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(rl.Rectangle{X: x, Y: *y, Width: panelWidth - 80, Height: 20}, "", "", value, minVal, maxVal)
	rl.DrawText(fmt.Sprintf(format, v), int32(x)+panelWidth-70, int32(*y)+2, 16, rl.DarkGray)
	*y += 35
	return v, v != value
}

func scatter(p *systems.Placement, n int) [][2]float64 {
	out := make([][2]float64, n)
	for i := range out {
		x, y := p.Scatter(nil)
		out[i] = [2]float64{x, y}
	}
	return out
}

func placementYAML(p config.PlacementConfig) string {
	return fmt.Sprintf("placement:\n  noise_scale: %.0f\n  threshold: %.2f\n  max_tries: %d",
		p.NoiseScale, p.Threshold, p.MaxTries)
}

// updateTexture shades the density field, brighter where bushes may grow.
func updateTexture(texture rl.Texture2D, p *systems.Placement, gridW, gridH int, threshold float64) {
	pixels := make([]color.RGBA, gridW*gridH)
	for gy := range gridH {
		for gx := range gridW {
			d := p.Density(float64(gx*gridStep), float64(gy*gridStep))
			v := uint8(d * 160)
			c := color.RGBA{R: v / 2, G: v, B: v / 2, A: 255}
			if d >= threshold {
				c.G = 90 + v
			}
			pixels[gy*gridW+gx] = c
		}
	}
	rl.UpdateTexture(texture, pixels)
}
