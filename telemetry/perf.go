package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/warren/systems"
)

// genSample is the timing of one generation. phases is indexed like
// PerfCollector.phaseIDs at the time it was recorded.
type genSample struct {
	total  time.Duration
	phases []time.Duration
	agents int
}

// PerfCollector keeps a ring of per-generation timings.
type PerfCollector struct {
	ring  []genSample
	next  int
	count int

	phaseIDs   []string
	phaseIndex map[string]int

	cur        genSample
	genStart   time.Time
	phaseStart time.Time
	phase      int // index into phaseIDs, -1 outside a phase

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over the last window
// generations. Phases are pre-registered in execution order.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	p := &PerfCollector{
		ring:       make([]genSample, window),
		phaseIndex: make(map[string]int),
		phase:      -1,
	}
	for _, id := range systems.PhaseIDs() {
		p.indexOf(id)
	}
	return p
}

func (p *PerfCollector) indexOf(id string) int {
	if i, ok := p.phaseIndex[id]; ok {
		return i
	}
	p.phaseIndex[id] = len(p.phaseIDs)
	p.phaseIDs = append(p.phaseIDs, id)
	return len(p.phaseIDs) - 1
}

// StartGeneration begins timing a generation over a population of agents.
func (p *PerfCollector) StartGeneration(agents int) {
	p.genStart = time.Now()
	p.cur = genSample{phases: make([]time.Duration, len(p.phaseIDs)), agents: agents}
	p.phase = -1
}

// StartPhase closes the running phase, if any, and opens the next one.
func (p *PerfCollector) StartPhase(id string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = p.indexOf(id)
	for len(p.cur.phases) <= p.phase {
		p.cur.phases = append(p.cur.phases, 0)
	}
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndGeneration closes the last phase and stores the sample.
func (p *PerfCollector) EndGeneration() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1
	p.cur.total = now.Sub(p.genStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordFrame marks a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the window.
type PerfStats struct {
	AvgGen time.Duration
	MinGen time.Duration
	MaxGen time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of AvgGen, 0-100

	GensPerSec   float64
	AgentsPerSec float64 // agents carried through all phases per second
	FPS          float64
}

// Stats aggregates the stored samples.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration, len(p.phaseIDs)),
		PhasePct: make(map[string]float64, len(p.phaseIDs)),
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var agents int
	sums := make([]time.Duration, len(p.phaseIDs))
	for i, smp := range p.ring[:p.count] {
		total += smp.total
		agents += smp.agents
		if i == 0 || smp.total < s.MinGen {
			s.MinGen = smp.total
		}
		s.MaxGen = max(s.MaxGen, smp.total)
		for j, d := range smp.phases {
			sums[j] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgGen = total / n
	for j, id := range p.phaseIDs {
		if sums[j] == 0 {
			continue
		}
		s.PhaseAvg[id] = sums[j] / n
		if s.AvgGen > 0 {
			s.PhasePct[id] = 100 * float64(sums[j]/n) / float64(s.AvgGen)
		}
	}
	if total > 0 {
		secs := total.Seconds()
		s.GensPerSec = float64(p.count) / secs
		s.AgentsPerSec = float64(agents) / secs
	}
	return s
}

// LogValue implements slog.LogValuer. Phases appear in execution order.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_gen_us", s.AvgGen.Microseconds()),
		slog.Int64("max_gen_us", s.MaxGen.Microseconds()),
		slog.Int("gens_per_sec", int(s.GensPerSec)),
		slog.Int("agents_per_sec", int(s.AgentsPerSec)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, id := range systems.PhaseIDs() {
		if pct := s.PhasePct[id]; pct >= 0.1 {
			attrs = append(attrs, slog.Float64(id+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the summary under the "perf" message.
func (s PerfStats) LogStats() {
	slog.Info("perf", "timing", s)
}

// PerfRow is one perf.csv line.
type PerfRow struct {
	Generation   int32   `csv:"generation"`
	AvgGenUS     int64   `csv:"avg_gen_us"`
	MinGenUS     int64   `csv:"min_gen_us"`
	MaxGenUS     int64   `csv:"max_gen_us"`
	GensPerSec   float64 `csv:"gens_per_sec"`
	AgentsPerSec float64 `csv:"agents_per_sec"`
	FPS          float64 `csv:"fps"`
	MovePct      float64 `csv:"move_pct"`
	EatPct       float64 `csv:"eat_pct"`
	SurvivePct   float64 `csv:"survive_pct"`
	ReproducePct float64 `csv:"reproduce_pct"`
	RegrowPct    float64 `csv:"regrow_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// Row flattens the summary for the generation that closed the window.
func (s PerfStats) Row(generation int32) PerfRow {
	return PerfRow{
		Generation:   generation,
		AvgGenUS:     s.AvgGen.Microseconds(),
		MinGenUS:     s.MinGen.Microseconds(),
		MaxGenUS:     s.MaxGen.Microseconds(),
		GensPerSec:   s.GensPerSec,
		AgentsPerSec: s.AgentsPerSec,
		FPS:          s.FPS,
		MovePct:      s.PhasePct[systems.PhaseMove],
		EatPct:       s.PhasePct[systems.PhaseEat],
		SurvivePct:   s.PhasePct[systems.PhaseSurvive],
		ReproducePct: s.PhasePct[systems.PhaseReproduce],
		RegrowPct:    s.PhasePct[systems.PhaseRegrow],
		TelemetryPct: s.PhasePct[systems.PhaseTelemetry],
	}
}
