package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/telemetry"
)

// HUD panel geometry.
const (
	hudX      = 10
	hudY      = 10
	hudWidth  = 230
	hudHeight = 250
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick           uint64
	Creatures      int
	Bushes         int
	Berries        int
	Stats          telemetry.SecondStats // last recorded second
	StepsPerUpdate int
	FPS            int32
	Paused         bool
}

// HUDAction reports control changes made on the HUD this frame.
type HUDAction struct {
	TogglePause    bool
	StepsPerUpdate int // 0 = unchanged
}

// HUD renders the main heads-up display with a pause button and a
// steps-per-update slider.
type HUD struct {
	renderer *Renderer
	minSteps float32
	maxSteps float32
}

// NewHUD creates a HUD whose slider spans [minSteps, maxSteps].
func NewHUD(minSteps, maxSteps int) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		minSteps: float32(minSteps),
		maxSteps: float32(maxSteps),
	}
}

// Bounds returns the screen rectangle covered by the HUD.
func (h *HUD) Bounds() rl.Rectangle {
	return rl.Rectangle{X: hudX, Y: hudY, Width: hudWidth, Height: hudHeight}
}

// Contains reports whether a screen point falls on the HUD.
func (h *HUD) Contains(p rl.Vector2) bool {
	b := h.Bounds()
	return p.X >= b.X && p.X < b.X+b.Width && p.Y >= b.Y && p.Y < b.Y+b.Height
}

// Draw renders the HUD and returns the control changes made this frame.
func (h *HUD) Draw(data HUDData) HUDAction {
	r := h.renderer
	pad := r.Theme.Padding
	x := int32(hudX) + pad
	y := int32(hudY) + pad

	r.DrawPanel(hudX, hudY, hudWidth, hudHeight)

	y = r.DrawSectionHeader(x, y, "Meadow")
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Creatures", fmt.Sprintf("%d", data.Creatures))
	y = r.DrawLabelValue(x, y, "Bushes", fmt.Sprintf("%d (%d berries)", data.Bushes, data.Berries))

	s := data.Stats
	y = r.DrawLabelValue(x, y, "Energy", fmt.Sprintf("%.1f", s.AvgEnergy))
	y = r.DrawLabelValue(x, y, "Thirst", fmt.Sprintf("%.1f (p10 %.0f)", s.AvgThirst, s.ThirstP10))
	y = r.DrawLabelValue(x, y, "Hunger", fmt.Sprintf("%.1f (p10 %.0f)", s.AvgHunger, s.HungerP10))
	y = r.DrawLabelValue(x, y, "Last sec", fmt.Sprintf("%d drinks, %d meals", s.Drinks, s.Meals))
	y += 4

	var action HUDAction

	label := "Pause"
	if data.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 80, Height: 20}, label) {
		action.TogglePause = true
	}
	if data.Paused {
		rl.DrawText("PAUSED", x+90, y+4, r.Theme.FontSize, r.Theme.PausedColor)
	}
	y += 28

	rl.DrawText("Steps per update", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	steps := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: hudWidth - 2*float32(pad) - 30, Height: 16},
		"", "",
		float32(data.StepsPerUpdate), h.minSteps, h.maxSteps,
	)
	rl.DrawText(fmt.Sprintf("%dx", data.StepsPerUpdate), x+hudWidth-2*pad-24, y+2, r.Theme.FontSize, r.Theme.ValueColor)
	if n := SliderSteps(steps); n != data.StepsPerUpdate {
		action.StepsPerUpdate = n
	}

	return action
}

// SliderSteps rounds a slider value to a step count.
func SliderSteps(v float32) int {
	return int(math.Round(float64(v)))
}
