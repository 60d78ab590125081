// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Grid       GridConfig       `yaml:"grid"`
	Resource   ResourceConfig   `yaml:"resource"`
	Population PopulationConfig `yaml:"population"`
	Species    []SpeciesConfig  `yaml:"species"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`
	Stream     StreamConfig     `yaml:"stream"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the toroidal grid dimensions.
type GridConfig struct {
	Size       int `yaml:"size"`        // Cells per side
	CellPixels int `yaml:"cell_pixels"` // Rendered pixels per cell (0 = fit to screen)
}

// ResourceConfig holds grass layer parameters.
type ResourceConfig struct {
	GrassRate     float64 `yaml:"grass_rate"`     // Per-cell regrowth probability per generation
	InitialAmount int     `yaml:"initial_amount"` // Grass on every cell at start
	TieBreak      string  `yaml:"tie_break"`      // "random" or "first"
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	MaxPerSpecies int `yaml:"max_per_species"` // Spawning stops at this count (0 = unlimited)
}

// SpeciesConfig describes one species and its thresholds.
type SpeciesConfig struct {
	Name                  string `yaml:"name"`
	Kind                  string `yaml:"kind"` // "prey" or "predator"
	Diet                  string `yaml:"diet"` // "grass" or "prey"
	Initial               int    `yaml:"initial"`
	MaxOffspring          int    `yaml:"max_offspring"`
	StarvationThreshold   int    `yaml:"starvation_threshold"`
	ReproductionThreshold int    `yaml:"reproduction_threshold"`
	HungerTolerance       int    `yaml:"hunger_tolerance"` // Generations below threshold before starving
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Generations per window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PreyCrash        PreyCrashConfig        `yaml:"prey_crash"`
	PredatorRecovery PredatorRecoveryConfig `yaml:"predator_recovery"`
	StableEcosystem  StableEcosystemConfig  `yaml:"stable_ecosystem"`
}

// PreyCrashConfig holds prey crash detection parameters.
type PreyCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// PredatorRecoveryConfig holds predator recovery detection parameters.
type PredatorRecoveryConfig struct {
	MinPopulation      int `yaml:"min_population"`
	RecoveryMultiplier int `yaml:"recovery_multiplier"`
	MinFinal           int `yaml:"min_final"`
}

// StableEcosystemConfig holds stable ecosystem detection parameters.
type StableEcosystemConfig struct {
	MinPrey       int     `yaml:"min_prey"`
	MinPred       int     `yaml:"min_pred"`
	CVThreshold   float64 `yaml:"cv_threshold"`
	StableWindows int     `yaml:"stable_windows"`
}

// StreamConfig holds websocket streaming settings.
type StreamConfig struct {
	Addr  string `yaml:"addr"`  // Listen address, empty disables streaming
	Every int    `yaml:"every"` // Publish every N generations
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellPixels   int            // Effective pixels per cell
	SpeciesIndex map[string]int // kind -> index into Species
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns a fresh copy of the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Clone returns a deep copy, so callers can tweak a config without touching the global one.
func (c *Config) Clone() *Config {
	out := *c
	out.Species = append([]SpeciesConfig(nil), c.Species...)
	out.computeDerived()
	return &out
}

// SpeciesFor returns the species entry for a kind name.
func (c *Config) SpeciesFor(kind string) (SpeciesConfig, bool) {
	idx, ok := c.Derived.SpeciesIndex[kind]
	if !ok {
		return SpeciesConfig{}, false
	}
	return c.Species[idx], true
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.CellPixels = c.Grid.CellPixels
	if c.Derived.CellPixels <= 0 && c.Grid.Size > 0 {
		c.Derived.CellPixels = max(1, min(c.Screen.Width, c.Screen.Height)/c.Grid.Size)
	}

	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 1
	}
	if c.Stream.Every < 1 {
		c.Stream.Every = 1
	}
	if c.Resource.TieBreak == "" {
		c.Resource.TieBreak = TieBreakRandom
	}

	c.Derived.SpeciesIndex = make(map[string]int, len(c.Species))
	for i, sp := range c.Species {
		c.Derived.SpeciesIndex[sp.Kind] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
