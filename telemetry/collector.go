package telemetry

import "github.com/pthm-cable/warren/components"

// DeathCause says why an agent left the population.
type DeathCause uint8

const (
	CauseStarvation DeathCause = iota
	CausePredation
)

// Collector accumulates events within windows of generations and produces WindowStats.
type Collector struct {
	windowGens int32

	// Current window tracking
	windowStartGen int32

	// Event counters for current window
	births       [components.NumKinds]int
	starved      [components.NumKinds]int
	preyEaten    int
	grassEaten   int
	grassRegrown int
	lifespans    [components.NumKinds][]float64
}

// NewCollector creates a new stats collector flushing every windowGens generations.
func NewCollector(windowGens int) *Collector {
	if windowGens < 1 {
		windowGens = 1
	}
	return &Collector{windowGens: int32(windowGens)}
}

// RecordBirths records n births of a kind.
func (c *Collector) RecordBirths(kind components.Kind, n int) {
	c.births[kind] += n
}

// RecordDeath records a death and the agent's age in generations.
func (c *Collector) RecordDeath(kind components.Kind, cause DeathCause, lifespan int32) {
	switch cause {
	case CausePredation:
		c.preyEaten++
	default:
		c.starved[kind]++
	}
	c.lifespans[kind] = append(c.lifespans[kind], float64(lifespan))
}

// RecordGrazing records grass consumed in an eat phase.
func (c *Collector) RecordGrazing(amount int) {
	c.grassEaten += amount
}

// RecordRegrowth records cells that regrew in a regrow phase.
func (c *Collector) RecordRegrowth(cells int) {
	c.grassRegrown += cells
}

// ShouldFlush returns true if enough generations have passed to flush the window.
func (c *Collector) ShouldFlush(generation int32) bool {
	return generation-c.windowStartGen >= c.windowGens
}

// Sample is the population state measured at flush time.
type Sample struct {
	PreyCount  int
	PredCount  int
	PreyIntake []float64
	PredIntake []float64
	PredHunger []float64
	GrassCover float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(generation int32, s Sample) WindowStats {
	preyIntake := Describe(s.PreyIntake)
	predIntake := Describe(s.PredIntake)
	predHunger := Describe(s.PredHunger)

	stats := WindowStats{
		WindowStartGen: c.windowStartGen,
		WindowEndGen:   generation,

		PreyCount: s.PreyCount,
		PredCount: s.PredCount,

		PreyBirths:  c.births[components.KindPrey],
		PredBirths:  c.births[components.KindPredator],
		PreyStarved: c.starved[components.KindPrey],
		PredStarved: c.starved[components.KindPredator],
		PreyEaten:   c.preyEaten,

		GrassEaten:   c.grassEaten,
		GrassRegrown: c.grassRegrown,
		GrassCover:   s.GrassCover,

		PreyIntakeMean: preyIntake.Mean,
		PredIntakeMean: predIntake.Mean,
		PredIntakeStd:  predIntake.Std,
		PredHungerMean: predHunger.Mean,
		PredHungerP90:  predHunger.P90,

		PreyLifespanMean: Describe(c.lifespans[components.KindPrey]).Mean,
		PredLifespanMean: Describe(c.lifespans[components.KindPredator]).Mean,
	}

	// Reset for next window
	c.windowStartGen = generation
	c.births = [components.NumKinds]int{}
	c.starved = [components.NumKinds]int{}
	c.preyEaten = 0
	c.grassEaten = 0
	c.grassRegrown = 0
	for k := range c.lifespans {
		c.lifespans[k] = c.lifespans[k][:0]
	}

	return stats
}
