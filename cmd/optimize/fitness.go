package main

import (
	"math"
	"sync"
	"time"

	"github.com/pthm-cable/meadow/clock"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/telemetry"
)

// refusalWeight scales the penalty for refused claims and failed meals
// relative to the vitals score.
const refusalWeight = 0.25

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   uint64
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	bestHistory []telemetry.SecondStats
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks uint64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHistory returns the per-second stats of the best seed of the best
// evaluation.
func (fe *FitnessEvaluator) BestHistory() []telemetry.SecondStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHistory
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

type seedResult struct {
	fitness float64
	quality float64
	history []telemetry.SecondStats
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			history := fe.runSimulation(x, s)
			quality := computeQuality(history, fe.baseConfig.Behavior.VitalsMax)
			results[idx] = seedResult{
				fitness: computeFitness(history, quality),
				quality: quality,
				history: history,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	best := results[0]
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < best.fitness {
			best = r
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHistory = best.history
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes one headless run on a manual wall clock that
// advances one tick's worth of real time per step, and returns the
// recorded seconds.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []telemetry.SecondStats {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Recompute()

	var history []telemetry.SecondStats
	wall := clock.NewManualClock(time.Unix(0, 0))
	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:     seed,
		Headless: true,
		Wall:     wall,
		StatsCallback: func(s telemetry.SecondStats) {
			history = append(history, s)
		},
	})
	if err != nil {
		return nil
	}
	defer g.Close()

	tickDur := time.Second / time.Duration(cfg.Clock.TicksPerSecond)
	for g.Tick() < fe.maxTicks {
		g.Step()
		wall.Advance(tickDur)
	}
	return history
}

// computeQuality scores a run in [0,1]: the mean over recorded seconds of
// the worse of the hunger and thirst 10th percentiles, as a fraction of the
// vitals maximum.
func computeQuality(history []telemetry.SecondStats, vitalsMax int) float64 {
	if len(history) == 0 || vitalsMax <= 0 {
		return 0
	}
	var sum float64
	for _, s := range history {
		sum += min(s.HungerP10, s.ThirstP10) / float64(vitalsMax)
	}
	return sum / float64(len(history))
}

// computeFitness combines quality with the share of consumption attempts
// that were refused or came away empty.
func computeFitness(history []telemetry.SecondStats, quality float64) float64 {
	var ok, refused int
	for _, s := range history {
		ok += s.Drinks + s.Meals
		refused += s.FailedMeals + s.ClaimsRefused
	}
	var refusal float64
	if total := ok + refused; total > 0 {
		refusal = float64(refused) / float64(total)
	}
	return -quality + refusalWeight*refusal
}

// copyConfig returns a deep-enough copy of the base config for one run.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Population.Names = append([]string(nil), fe.baseConfig.Population.Names...)
	cfg.Creature.Diets = append([]string(nil), fe.baseConfig.Creature.Diets...)
	cfg.Lake.Points = append([][]float64(nil), fe.baseConfig.Lake.Points...)
	return &cfg
}
