package game

import "github.com/pthm-cable/meadow/components"

// pointInPolygon reports whether (x, y) lies inside poly (even-odd rule).
func pointInPolygon(x, y float64, poly []components.Position) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

func distanceSq(x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	return dx*dx + dy*dy
}

// clampToWorld keeps a spawn point inside [0,w]x[0,h].
func clampToWorld(x, y, w, h float64) (float64, float64) {
	return max(0, min(x, w)), max(0, min(y, h))
}
