package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
)

// Arrival is the outcome of one homing step.
type Arrival uint8

const (
	EnRoute      Arrival = iota // still moving toward the target
	ArrivedEat                  // touching a bush with berries
	ArrivedDrink                // touching a water point
	ArrivedNone                 // touching something with nothing to consume; target cleared
	TargetLost                  // target no longer resolves; target cleared
)

// Steering computes per-tick velocity and position updates.
type Steering struct {
	accelScale         float64
	minAccel           float64
	damping            float64
	separationRadius   float64
	separationStrength float64
	rng                RNG
}

// NewSteering creates a steering engine from config.
func NewSteering(cfg *config.SteeringConfig, rng RNG) *Steering {
	return &Steering{
		accelScale:         cfg.AccelScale,
		minAccel:           cfg.MinAccel,
		damping:            cfg.Damping,
		separationRadius:   cfg.SeparationRadius,
		separationStrength: cfg.SeparationStrength,
		rng:                rng,
	}
}

// SeparationRadius returns the neighbor radius used for crowd separation.
func (s *Steering) SeparationRadius() float64 {
	return s.separationRadius
}

// MoveRandom applies a random acceleration, crowd separation, a speed
// limit and damping, then integrates position.
// neighbors must not include the moving creature itself.
func (s *Steering) MoveRandom(pos *components.Position, vel *components.Velocity, speed float64, neighbors []Neighbor) {
	k := math.Max(s.minAccel, speed*s.accelScale)
	v := r2.Vec{X: vel.X, Y: vel.Y}
	v = r2.Add(v, r2.Vec{X: uniform(s.rng) * k, Y: uniform(s.rng) * k})

	v = r2.Add(v, s.separation(neighbors))

	if mag := r2.Norm(v); mag > speed && mag > 0 {
		v = r2.Scale(speed/mag, v)
	}

	v = r2.Scale(s.damping, v)

	vel.X, vel.Y = v.X, v.Y
	pos.X += v.X
	pos.Y += v.Y
}

// minSeparationDistSq skips neighbors sitting on top of the creature.
const minSeparationDistSq = 0.01 * 0.01

// separation sums repulsion from neighbors inside the separation radius.
// Each push points away from the neighbor, scales with 1/d and falls off
// linearly to zero at the radius edge.
func (s *Steering) separation(neighbors []Neighbor) r2.Vec {
	var push r2.Vec
	radius := s.separationRadius
	if radius <= 0 {
		return push
	}
	for _, n := range neighbors {
		if n.DistSq < minSeparationDistSq {
			continue
		}
		d := math.Sqrt(n.DistSq)
		if d >= radius {
			continue
		}
		away := r2.Vec{X: -n.DX / d, Y: -n.DY / d}
		weight := (1 - d/radius) / d
		push = r2.Add(push, r2.Scale(weight, away))
	}
	return r2.Scale(s.separationStrength, push)
}

// MoveTowards steps pos toward target by at most speed without overshoot.
// It reports arrival once the creature is within touch distance
// (creature radius plus target radius). Velocity is set to the damped step
// so homing does not accumulate inertia.
func (s *Steering) MoveTowards(pos *components.Position, vel *components.Velocity, speed, radius float64, target Resolved) Arrival {
	from := vec(*pos)
	to := r2.Vec{X: target.X, Y: target.Y}
	delta := r2.Sub(to, from)
	d := r2.Norm(delta)

	if d <= radius+target.Radius {
		vel.X, vel.Y = 0, 0
		switch {
		case target.Res == nil:
			return ArrivedNone
		case target.Res.IsWater():
			return ArrivedDrink
		case target.Res.HasBerries():
			return ArrivedEat
		default:
			return ArrivedNone
		}
	}

	step := math.Min(speed, d)
	move := r2.Scale(step/d, delta)

	pos.X += move.X
	pos.Y += move.Y
	v := r2.Scale(s.damping, move)
	vel.X, vel.Y = v.X, v.Y
	return EnRoute
}

// MoveAwayPoint returns a point lengths*radius away from pos at a random angle.
func (s *Steering) MoveAwayPoint(pos components.Position, radius, lengths float64) components.Position {
	angle := s.rng.Float64() * 2 * math.Pi
	dist := lengths * radius
	return components.Position{
		X: pos.X + math.Cos(angle)*dist,
		Y: pos.Y + math.Sin(angle)*dist,
	}
}
