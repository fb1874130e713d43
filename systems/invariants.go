package systems

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// CheckInvariants verifies the world-level guarantees that must hold at
// every tick boundary:
//   - every creature is inside [0,w]x[0,h]
//   - every bush has no more claims than berries
//   - every water point has at most one claim
//   - no creature holds more than one claim
//
// It returns all violations joined, or nil.
func CheckInvariants(creatures *Creatures, index *ResourceIndex, w, h float64) error {
	var errs []error

	creatures.Each(func(e ecs.Entity, pos *components.Position, _ *components.Velocity, _ *components.Vitals, _ *components.Traits, _ *components.Behavior) {
		if pos.X < 0 || pos.X > w || pos.Y < 0 || pos.Y > h {
			errs = append(errs, fmt.Errorf("creature %v out of bounds at (%.2f, %.2f)", e, pos.X, pos.Y))
		}
	})

	holds := make(map[ecs.Entity]int)
	for _, e := range index.Bushes() {
		_, res, ok := index.Get(e)
		if !ok {
			continue
		}
		if res.Quantity < 0 || len(res.Reserved) > res.Quantity {
			errs = append(errs, fmt.Errorf("bush %v has %d claims for %d berries", e, len(res.Reserved), res.Quantity))
		}
		for _, a := range res.Reserved {
			holds[a]++
		}
	}
	for _, e := range index.Water() {
		_, res, ok := index.Get(e)
		if !ok {
			continue
		}
		if len(res.Reserved) > 1 {
			errs = append(errs, fmt.Errorf("water point %v has %d claims", e, len(res.Reserved)))
		}
		for _, a := range res.Reserved {
			holds[a]++
		}
	}
	for a, n := range holds {
		if n > 1 {
			errs = append(errs, fmt.Errorf("creature %v holds %d claims", a, n))
		}
	}

	return errors.Join(errs...)
}

// HeldBy counts the claims agent holds across all resources. It walks every
// ledger, so it is meant for checks and tests, not the per-tick loop.
func (ix *ResourceIndex) HeldBy(agent ecs.Entity) int {
	n := 0
	for _, list := range [][]ecs.Entity{ix.bushes, ix.water} {
		for _, e := range list {
			if _, res, ok := ix.Get(e); ok && Holds(res, agent) {
				n++
			}
		}
	}
	return n
}
