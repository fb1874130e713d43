package systems

import (
	"github.com/pthm-cable/meadow/clock"
	"github.com/pthm-cable/meadow/config"
)

// RegrowSystem periodically gives each bush a RegrowRate chance to grow a
// berry. It is only scheduled when bush.regrow_period is positive; Regrow
// itself is always available as an explicit operation.
type RegrowSystem struct {
	index *ResourceIndex
	rng   RNG
}

// NewRegrowSystem creates the regrow system and schedules it if enabled.
func NewRegrowSystem(cfg *config.BushConfig, sched *clock.Scheduler, index *ResourceIndex, rng RNG) *RegrowSystem {
	s := &RegrowSystem{index: index, rng: rng}
	if cfg.RegrowPeriod > 0 {
		sched.Every(clock.Duration(cfg.RegrowPeriod), func(clock.Tick) bool {
			s.Update()
			return true
		})
	}
	return s
}

// Update runs one regrow pass over all bushes.
func (s *RegrowSystem) Update() {
	for _, e := range s.index.Bushes() {
		_, res, ok := s.index.Get(e)
		if !ok {
			continue
		}
		if s.rng.Float64() >= res.RegrowRate {
			continue
		}
		Regrow(res)
	}
}
