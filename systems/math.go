package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/meadow/components"
)

// RNG is the interface for random number generation.
type RNG interface {
	Float64() float64
}

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// capInt caps a vital at max. There is deliberately no floor.
func capInt(v, maxVal int) int {
	if v > maxVal {
		return maxVal
	}
	return v
}

// ClampToBounds keeps a position inside [0,w]x[0,h].
func ClampToBounds(pos *components.Position, w, h float64) {
	pos.X = clampFloat(pos.X, 0, w)
	pos.Y = clampFloat(pos.Y, 0, h)
}

// uniform returns a sample from U(-1, 1).
func uniform(rng RNG) float64 {
	return rng.Float64()*2 - 1
}

// vec converts a position to a gonum vector.
func vec(p components.Position) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(distanceSq(x1, y1, x2, y2))
}
