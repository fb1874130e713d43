package systems

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/meadow/config"
)

// Placement picks spawn points for bushes. Candidates are drawn uniformly
// and accepted where a simplex noise field exceeds a threshold, which
// groups bushes into thickets instead of spreading them evenly.
type Placement struct {
	noise     opensimplex.Noise
	rng       RNG
	scale     float64
	threshold float64
	maxTries  int
	width     float64
	height    float64
}

// NewPlacement creates a placement sampler for a world of size w x h.
func NewPlacement(cfg *config.PlacementConfig, seed int64, rng RNG, w, h float64) *Placement {
	scale := cfg.NoiseScale
	if scale <= 0 {
		scale = 1
	}
	return &Placement{
		noise:     opensimplex.NewNormalized(seed),
		rng:       rng,
		scale:     scale,
		threshold: cfg.Threshold,
		maxTries:  max(1, cfg.MaxTries),
		width:     w,
		height:    h,
	}
}

// Density returns the normalized noise value in [0, 1] at (x, y).
func (p *Placement) Density(x, y float64) float64 {
	return p.noise.Eval2(x/p.scale, y/p.scale)
}

// Scatter returns a point inside the world. blocked, if non-nil, rejects
// candidates (e.g. inside the lake). When no candidate clears the noise
// threshold within maxTries, the last unblocked candidate is used.
func (p *Placement) Scatter(blocked func(x, y float64) bool) (float64, float64) {
	var fx, fy float64
	found := false
	for range p.maxTries {
		x := p.rng.Float64() * p.width
		y := p.rng.Float64() * p.height
		if blocked != nil && blocked(x, y) {
			continue
		}
		if p.Density(x, y) >= p.threshold {
			return x, y
		}
		fx, fy, found = x, y, true
	}
	if !found {
		fx, fy = p.rng.Float64()*p.width, p.rng.Float64()*p.height
	}
	return fx, fy
}
