package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
	"github.com/pthm-cable/warren/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxGens    int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	bestSeed    int64
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxGens int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxGens:     maxGens,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestSeed returns the seed that coexisted longest under the best parameters.
func (fe *FitnessEvaluator) BestSeed() int64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestSeed
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	coexistGens int32                   // generations with both species alive (maxGens if they survived)
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean number of generations both species coexist.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var totalGens, totalQuality float64
	bestIdx := 0
	for i, r := range results {
		totalGens += float64(r.coexistGens)
		totalQuality += computeQuality(r.windowStats)
		if r.coexistGens > results[bestIdx].coexistGens {
			bestIdx = i
		}
	}

	n := float64(len(fe.seeds))
	fitness := -totalGens / n

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestSeed = fe.seeds[bestIdx]
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return fitness
}

// runSimulation executes a single headless run until a species dies out or
// maxGens is reached. cfg is shared read-only across seeds.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	result := &runResult{}

	g, err := game.New(cfg, game.Options{
		Seed: seed,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		// Parameters outside the valid config space score as immediate extinction
		slog.Error("invalid parameters", "seed", seed, "error", err)
		return result
	}
	defer g.Close()

	for g.Generation() < fe.maxGens {
		if g.Extinct(components.KindPrey) || g.Extinct(components.KindPredator) {
			result.coexistGens = g.Generation()
			return result
		}
		g.Step()
	}

	result.coexistGens = fe.maxGens
	return result
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.40
	qualityWeightStability = 0.35
	qualityWeightGrass     = 0.25

	qualityWarmupWindows = 3 // skip first N windows (warmup)
	qualityMinPop        = 3 // exclude windows where either species < this
)

// computeQuality scores an ecosystem in [0, 1] from window stats. It is
// reported alongside fitness and does not affect the search.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var ratioSum, grassSum float64
	preyCounts := make([]float64, 0, len(valid))
	predCounts := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.PreyCount < qualityMinPop || w.PredCount < qualityMinPop {
			continue
		}
		preyCounts = append(preyCounts, float64(w.PreyCount))
		predCounts = append(predCounts, float64(w.PredCount))

		// Prey:predator ratio near 10:1
		ratio := float64(w.PreyCount) / float64(w.PredCount)
		logErr := math.Log(ratio / 10.0)
		ratioSum += math.Exp(-logErr * logErr)

		// Grass neither bare nor untouched
		grassSum += math.Exp(-math.Pow((w.GrassCover-0.5)/0.3, 2))
	}

	n := len(preyCounts)
	if n == 0 {
		return 0
	}

	stabilityScore := 0.0
	if n >= 2 {
		cvPrey := telemetry.CoefficientOfVariation(preyCounts)
		cvPred := telemetry.CoefficientOfVariation(predCounts)
		stabilityScore = math.Exp(-(cvPrey*cvPrey + cvPred*cvPred))
	}

	quality := qualityWeightRatio*ratioSum/float64(n) +
		qualityWeightStability*stabilityScore +
		qualityWeightGrass*grassSum/float64(n)

	return min(1, max(0, quality))
}
