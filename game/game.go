// Package game owns the simulation state: the grass layer, the agent
// population stored in an ark ECS world, and the five-phase generation step.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// Options holds runtime options that are not part of the YAML config.
type Options struct {
	Seed        int64
	LogStats    bool
	SnapshotDir string
	OutputDir   string

	// RNG overrides the seeded source for every random draw.
	RNG systems.RNG
	// TieBreaker overrides resource.tie_break.
	TieBreaker systems.TieBreaker

	// StatsCallback is called with every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// AgentView is the read-only view of one agent handed to renderers.
type AgentView struct {
	ID     uint32          `json:"id"`
	X      int             `json:"x"`
	Y      int             `json:"y"`
	Kind   components.Kind `json:"kind"`
	Intake int             `json:"intake"`
}

// Game holds the complete simulation state.
type Game struct {
	cfg *config.Config

	world       *ecs.World
	agentMapper *ecs.Map2[components.Position, components.Organism]
	agentFilter *ecs.Filter2[components.Position, components.Organism]
	orgMap      *ecs.Map1[components.Organism]

	grass     *systems.GrassField
	grassRate float64

	rng        systems.RNG
	rngSeed    int64
	tieBreaker systems.TieBreaker

	// Per-kind species parameters; configured[k] is false for kinds absent from config
	traits        [components.NumKinds]components.Traits
	configured    [components.NumKinds]bool
	maxPerSpecies int

	// State
	generation int32
	nextID     uint32
	counts     [components.NumKinds]int

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	lifetimeTracker  *telemetry.LifetimeTracker
	outputManager    *telemetry.OutputManager
	snapshotDir      string
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
}

// New validates cfg and builds a game with a fully grown grass layer and the
// configured initial population at uniformly random cells.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	cfg = cfg.Clone()

	world := ecs.NewWorld()

	g := &Game{
		cfg:           cfg,
		world:         world,
		agentMapper:   ecs.NewMap2[components.Position, components.Organism](world),
		agentFilter:   ecs.NewFilter2[components.Position, components.Organism](world),
		orgMap:        ecs.NewMap1[components.Organism](world),
		grass:         systems.NewGrassField(cfg.Grid.Size, cfg.Resource.InitialAmount),
		grassRate:     cfg.Resource.GrassRate,
		rng:           opts.RNG,
		rngSeed:       opts.Seed,
		maxPerSpecies: cfg.Population.MaxPerSpecies,
		nextID:        1,

		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		snapshotDir:      opts.SnapshotDir,
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
	}

	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(opts.Seed))
	}
	g.tieBreaker = opts.TieBreaker
	if g.tieBreaker == nil {
		g.tieBreaker = systems.NewTieBreaker(cfg.Resource.TieBreak, g.rng)
	}

	for _, sp := range cfg.Species {
		kind, _ := components.ParseKind(sp.Kind)
		diet, _ := components.ParseDiet(sp.Diet)
		g.traits[kind] = components.Traits{
			Diet:                  diet,
			MaxOffspring:          sp.MaxOffspring,
			StarvationThreshold:   sp.StarvationThreshold,
			ReproductionThreshold: sp.ReproductionThreshold,
			HungerTolerance:       sp.HungerTolerance,
		}
		g.configured[kind] = true
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	g.spawnInitialPopulation()

	return g, nil
}

// Config returns the game's private copy of the configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Size returns the number of cells per grid side.
func (g *Game) Size() int {
	return g.grass.Size
}

// Generation returns the number of completed generations.
func (g *Game) Generation() int32 {
	return g.generation
}

// Seed returns the seed the game was created with.
func (g *Game) Seed() int64 {
	return g.rngSeed
}

// GrassRate returns the current per-cell regrowth probability.
func (g *Game) GrassRate() float64 {
	return g.grassRate
}

// SetGrassRate changes the regrowth probability, clamped to [0, 1]. NaN is ignored.
func (g *Game) SetGrassRate(rate float64) {
	if math.IsNaN(rate) {
		return
	}
	g.grassRate = min(1, max(0, rate))
}

// Resources returns a copy of the grass layer indexed [y][x].
func (g *Game) Resources() [][]int {
	return g.grass.Snapshot()
}

// GrassCover returns the fraction of cells with grass.
func (g *Game) GrassCover() float64 {
	return g.grass.Cover()
}

// Population returns every live agent in population order.
func (g *Game) Population() []AgentView {
	out := make([]AgentView, 0, g.Total())
	query := g.agentFilter.Query()
	for query.Next() {
		pos, org := query.Get()
		out = append(out, AgentView{
			ID:     org.ID,
			X:      pos.X,
			Y:      pos.Y,
			Kind:   org.Kind,
			Intake: org.Intake,
		})
	}
	return out
}

// Count returns the number of live agents of a kind.
func (g *Game) Count(kind components.Kind) int {
	if kind >= components.NumKinds {
		return 0
	}
	return g.counts[kind]
}

// Total returns the number of live agents of every kind.
func (g *Game) Total() int {
	total := 0
	for _, n := range g.counts {
		total += n
	}
	return total
}

// Extinct reports whether a configured species has no live agents left.
// Kinds absent from the config are never extinct.
func (g *Game) Extinct(kind components.Kind) bool {
	if kind >= components.NumKinds || !g.configured[kind] {
		return false
	}
	return g.counts[kind] == 0
}

// Configured reports whether the config declares a species of this kind.
func (g *Game) Configured(kind components.Kind) bool {
	return kind < components.NumKinds && g.configured[kind]
}

// PerfStats returns the rolling per-phase timing.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame marks a rendered frame for FPS tracking.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// Close flushes and closes output files.
func (g *Game) Close() error {
	return g.outputManager.Close()
}
