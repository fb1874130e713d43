package telemetry

import "gonum.org/v1/gonum/stat"

// Sample is one creature's read-only contribution to a stats second.
type Sample struct {
	Speed  float64
	Size   float64
	Energy int
	Hunger int
	Thirst int
}

// Outcomes are the behavior tallies accumulated during a second.
type Outcomes struct {
	Drinks        int
	Meals         int
	FailedMeals   int
	ClaimsRefused int
}

// Tracker accumulates creature samples and closes them into one
// SecondStats per simulated second.
type Tracker struct {
	second int

	speed  []float64
	size   []float64
	energy []float64
	hunger []float64
	thirst []float64

	history []SecondStats
}

// NewTracker creates an empty tracker. The first recorded second is 1.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Add appends one creature's sample to the current second.
func (t *Tracker) Add(s Sample) {
	t.speed = append(t.speed, s.Speed)
	t.size = append(t.size, s.Size)
	t.energy = append(t.energy, float64(s.Energy))
	t.hunger = append(t.hunger, float64(s.Hunger))
	t.thirst = append(t.thirst, float64(s.Thirst))
}

// Record closes the current second. The second counter always advances,
// but an empty population records nothing and ok is false.
func (t *Tracker) Record(tick uint64, berries int, out Outcomes) (stats SecondStats, ok bool) {
	t.second++
	defer t.reset()

	n := len(t.energy)
	if n == 0 {
		return SecondStats{}, false
	}

	stats = SecondStats{
		Second:        t.second,
		Tick:          tick,
		Creatures:     n,
		Berries:       berries,
		Drinks:        out.Drinks,
		Meals:         out.Meals,
		FailedMeals:   out.FailedMeals,
		ClaimsRefused: out.ClaimsRefused,
	}
	stats.AvgSpeed = stat.Mean(t.speed, nil)
	stats.AvgSize = stat.Mean(t.size, nil)
	stats.AvgEnergy = stat.Mean(t.energy, nil)
	stats.AvgHunger, stats.HungerStd, stats.HungerP10 = Spread(t.hunger)
	stats.AvgThirst, stats.ThirstStd, stats.ThirstP10 = Spread(t.thirst)

	t.history = append(t.history, stats)
	return stats, true
}

// Second returns the number of seconds closed so far.
func (t *Tracker) Second() int {
	return t.second
}

// History returns every recorded second in order. Do not modify.
func (t *Tracker) History() []SecondStats {
	return t.history
}

func (t *Tracker) reset() {
	t.speed = t.speed[:0]
	t.size = t.size[:0]
	t.energy = t.energy[:0]
	t.hunger = t.hunger[:0]
	t.thirst = t.thirst[:0]
}
