package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/clock"
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
)

// DrainVitals lowers energy, thirst and hunger by amount. Values may go
// negative; nothing dies.
func DrainVitals(v *components.Vitals, amount int) {
	v.Energy -= amount
	v.Thirst -= amount
	v.Hunger -= amount
}

// RestoreThirst raises thirst by amount, capped at maxVal.
func RestoreThirst(v *components.Vitals, amount, maxVal int) {
	v.Thirst = capInt(v.Thirst+amount, maxVal)
}

// RestoreHunger raises hunger by amount, capped at maxVal.
func RestoreHunger(v *components.Vitals, amount, maxVal int) {
	v.Hunger = capInt(v.Hunger+amount, maxVal)
}

// VitalsSystem runs one drain process per creature on the tick scheduler.
// Each process starts when its creature is tracked, so creatures spawned
// at different ticks drain out of phase, and it is independent of behavior.
type VitalsSystem struct {
	sched     *clock.Scheduler
	creatures *Creatures
	period    clock.Duration
	amount    int
}

// NewVitalsSystem creates the drain system.
func NewVitalsSystem(cfg *config.BehaviorConfig, sched *clock.Scheduler, creatures *Creatures) *VitalsSystem {
	return &VitalsSystem{
		sched:     sched,
		creatures: creatures,
		period:    clock.Duration(cfg.DrainPeriod),
		amount:    cfg.DrainAmount,
	}
}

// Track starts the drain process for creature e.
func (s *VitalsSystem) Track(e ecs.Entity) {
	s.sched.Every(s.period, func(clock.Tick) bool {
		if !s.creatures.Alive(e) {
			return false
		}
		DrainVitals(s.creatures.Vitals(e), s.amount)
		return true
	})
}
