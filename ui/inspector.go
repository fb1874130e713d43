package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/systems"
)

// pickSlack widens the hover hit area around small creatures.
const pickSlack = 3

const inspectorWidth = 200

// Inspector shows the creature under the mouse cursor.
type Inspector struct {
	renderer *Renderer
	vitalMax int
	hovered  systems.CreatureView
	active   bool
}

// NewInspector creates an inspector. Vital bars are scaled to vitalMax.
func NewInspector(vitalMax int) *Inspector {
	return &Inspector{renderer: NewRenderer(), vitalMax: vitalMax}
}

// Hover selects the creature under (x, y), if any.
func (ins *Inspector) Hover(creatures []systems.CreatureView, x, y float64) {
	i, ok := PickCreature(creatures, x, y)
	ins.active = ok
	if ok {
		ins.hovered = creatures[i]
	}
}

// Hovered returns the creature under the cursor.
func (ins *Inspector) Hovered() (systems.CreatureView, bool) {
	return ins.hovered, ins.active
}

// Draw renders the inspector panel in the bottom-right corner.
func (ins *Inspector) Draw(screenW, screenH int32) {
	if !ins.active {
		return
	}
	r := ins.renderer
	pad := r.Theme.Padding
	c := ins.hovered

	height := pad*2 + r.Theme.LineHeight*6 + 4*3
	px := screenW - inspectorWidth - 10
	py := screenH - height - 10
	r.DrawPanel(px, py, inspectorWidth, height)

	x, y := px+pad, py+pad
	rl.DrawRectangle(x, y+2, 10, 10, ToColor(c.Color))
	y = r.DrawSectionHeader(x+16, y, c.Name)
	y = r.DrawLabelValue(x, y, "Diet", c.Diet.String())
	y = r.DrawLabelValue(x, y, "State", c.State.String())
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.2f / %.1f", c.Moving, c.Speed))

	width := inspectorWidth - 2*pad
	y = r.DrawVitalBar(x, y, "Energy", c.Vitals.Energy, ins.vitalMax, width)
	y = r.DrawVitalBar(x, y, "Thirst", c.Vitals.Thirst, ins.vitalMax, width)
	r.DrawVitalBar(x, y, "Hunger", c.Vitals.Hunger, ins.vitalMax, width)
}

// PickCreature returns the index of the creature whose body contains
// (x, y). When bodies overlap the closest center wins.
func PickCreature(creatures []systems.CreatureView, x, y float64) (int, bool) {
	best := -1
	bestDistSq := 0.0
	for i, c := range creatures {
		dx, dy := c.X-x, c.Y-y
		d := dx*dx + dy*dy
		reach := c.Radius + pickSlack
		if d > reach*reach {
			continue
		}
		if best < 0 || d < bestDistSq {
			best, bestDistSq = i, d
		}
	}
	return best, best >= 0
}
