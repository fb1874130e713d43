package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one part of a simulation step.
type Phase uint8

const (
	PhaseTimers   Phase = iota // scheduler: vitals drain, regrow
	PhaseBehavior              // spatial grid + decision step
	PhaseStats                 // sampling and recording
	numPhases
)

var phaseNames = [numPhases]string{"timers", "behavior", "stats"}

func (p Phase) String() string {
	if p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

type perfSample struct {
	tick   time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector tracks step timings over a rolling window of ticks.
type PerfCollector struct {
	now func() time.Time

	samples     []perfSample
	writeIndex  int
	sampleCount int

	current    perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
// now defaults to time.Now.
func NewPerfCollector(windowSize int, now func() time.Time) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	if now == nil {
		now = time.Now
	}
	return &PerfCollector{
		now:     now,
		samples: make([]perfSample, windowSize),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = perfSample{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.endPhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

// EndTick finishes the tick and records it in the window.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.endPhase(now)
	p.current.tick = now.Sub(p.tickStart)

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % len(p.samples)
	if p.sampleCount < len(p.samples) {
		p.sampleCount++
	}
}

func (p *PerfCollector) endPhase(now time.Time) {
	if p.inPhase {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// PerfStats holds averaged step timings.
type PerfStats struct {
	AvgTick        time.Duration
	MaxTick        time.Duration
	PhasePct       [numPhases]float64
	TicksPerSecond float64
}

// Stats averages the samples in the window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{}
	}

	var total, maxTick time.Duration
	var phaseSum [numPhases]time.Duration
	for _, s := range p.samples[:p.sampleCount] {
		total += s.tick
		maxTick = max(maxTick, s.tick)
		for i, d := range s.phases {
			phaseSum[i] += d
		}
	}

	out := PerfStats{
		AvgTick: total / time.Duration(p.sampleCount),
		MaxTick: maxTick,
	}
	if total > 0 {
		for i, d := range phaseSum {
			out.PhasePct[i] = float64(d) / float64(total) * 100
		}
	}
	if out.AvgTick > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTick)
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	for i, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(Phase(i).String()+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat row for perf.csv.
type PerfStatsCSV struct {
	Second      int     `csv:"second"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	TimersPct   float64 `csv:"timers_pct"`
	BehaviorPct float64 `csv:"behavior_pct"`
	StatsPct    float64 `csv:"stats_pct"`
}

// ToCSV flattens the stats for export.
func (s PerfStats) ToCSV(second int) PerfStatsCSV {
	return PerfStatsCSV{
		Second:      second,
		AvgTickUS:   s.AvgTick.Microseconds(),
		MaxTickUS:   s.MaxTick.Microseconds(),
		TicksPerSec: s.TicksPerSecond,
		TimersPct:   s.PhasePct[PhaseTimers],
		BehaviorPct: s.PhasePct[PhaseBehavior],
		StatsPct:    s.PhasePct[PhaseStats],
	}
}
