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
	World       WorldConfig       `yaml:"world"`
	Population  PopulationConfig  `yaml:"population"`
	Genome      GenomeConfig      `yaml:"genome"`
	Producer    ProducerConfig    `yaml:"producer"`
	Distributor DistributorConfig `yaml:"distributor"`
	Energy      EnergyConfig      `yaml:"energy"`
	Resources   ResourcesConfig   `yaml:"resources"`
	Calendar    CalendarConfig    `yaml:"calendar"`
	Terrain     TerrainConfig     `yaml:"terrain"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world dimensions and the master seed.
type WorldConfig struct {
	Size     int    `yaml:"size"`      // Side of the square world in world units
	CellSize int    `yaml:"cell_size"` // Side of one grid cell in world units
	Seed     uint64 `yaml:"seed"`      // Seed for the simulation RNG (0 = time based)
}

// PopulationConfig holds the initial population sizes.
type PopulationConfig struct {
	Producers    int `yaml:"producers"`
	Distributors int `yaml:"distributors"`
}

// TraitConfig bounds one heritable trait.
type TraitConfig struct {
	Min       float64 `yaml:"min"`
	Max       float64 `yaml:"max"`
	Sigma     float64 `yaml:"sigma"`     // Std dev of a pollen mutation before evolution-rate scaling
	Precision int     `yaml:"precision"` // Decimal digits kept after mutation or recombination
}

// GenomeConfig holds the bounds of the ten heritable Producer traits.
type GenomeConfig struct {
	Capacity         TraitConfig `yaml:"capacity"`
	ProductionRate   TraitConfig `yaml:"production_rate"`
	Resilience       TraitConfig `yaml:"resilience"`
	Lifespan         TraitConfig `yaml:"lifespan"`
	AgingSpeed       TraitConfig `yaml:"aging_speed"`
	ReproductionRate TraitConfig `yaml:"reproduction_rate"`
	OffspringCount   TraitConfig `yaml:"offspring_count"`
	PollenRate       TraitConfig `yaml:"pollen_rate"`
	IdealTemperature TraitConfig `yaml:"ideal_temperature"`
	EvolutionRate    TraitConfig `yaml:"evolution_rate"`
}

// RangeConfig is a half-open uniform range.
type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IntRangeConfig is a half-open integer range [Min, Max).
type IntRangeConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ProducerConfig holds Producer behaviour parameters.
type ProducerConfig struct {
	InitialOffspring IntRangeConfig `yaml:"initial_offspring"` // Offspring count of founders
	SenseRadius      int            `yaml:"sense_radius"`
	FoodRadius       int            `yaml:"food_radius"`      // Search radius for produced Food
	PollenRadius     int            `yaml:"pollen_radius"`    // Search radius for produced Pollen
	OffspringRadius  int            `yaml:"offspring_radius"` // Search radius for offspring cells
	ChanceDivisor    float64        `yaml:"chance_divisor"`   // Food chance = productivity/this, pollen chance = rate/this
}

// DistributorConfig holds Distributor founder ranges and behaviour parameters.
type DistributorConfig struct {
	Capacity         RangeConfig    `yaml:"capacity"`
	ProductionRate   RangeConfig    `yaml:"production_rate"`
	Resilience       RangeConfig    `yaml:"resilience"`
	Lifespan         RangeConfig    `yaml:"lifespan"`
	AgingSpeed       RangeConfig    `yaml:"aging_speed"`
	ReproductionRate RangeConfig    `yaml:"reproduction_rate"`
	EvolutionRate    RangeConfig    `yaml:"evolution_rate"`
	MaxSpeed         RangeConfig    `yaml:"max_speed"`
	OffspringCount   IntRangeConfig `yaml:"offspring_count"`
	DetectionRange   IntRangeConfig `yaml:"detection_range"`

	PerceptionRadius  int     `yaml:"perception_radius"`   // Sensed area radius in cells
	PickupDistance    int     `yaml:"pickup_distance"`     // Manhattan cells
	DropDistance      int     `yaml:"drop_distance"`       // Manhattan cells to a Producer
	RandomDropDivisor float64 `yaml:"random_drop_divisor"` // Random drop chance = max_speed/this
	CarrySlope        float64 `yaml:"carry_slope"`         // carry = round(slope*speed - offset)
	CarryOffset       float64 `yaml:"carry_offset"`
	MinCarry          int     `yaml:"min_carry"`
	MaxCarry          int     `yaml:"max_carry"`
}

// EnergyConfig holds the panic-mode thresholds.
type EnergyConfig struct {
	ShortfallEnergy  float64 `yaml:"shortfall_energy"`  // Shortfall below this energy
	SurplusEnergy    float64 `yaml:"surplus_energy"`    // Surplus above this energy
	CrisisEnergy     float64 `yaml:"crisis_energy"`     // Crisis below this energy
	PanicLimit       int     `yaml:"panic_limit"`       // panic_mode stays in [-limit, limit]
	SurplusDamping   float64 `yaml:"surplus_damping"`   // Surplus adjustment = adj/this
	CrisisMultiplier float64 `yaml:"crisis_multiplier"` // Crisis adjustment = adj*this
	RateDivisor      float64 `yaml:"rate_divisor"`      // Aging and reproduction shift = adj/this
	DeathJitter      float64 `yaml:"death_jitter"`      // Death threshold = lifespan + U(0, jitter)*(1+resilience)
	Precision        int     `yaml:"precision"`         // Decimal digits kept on vitals
}

// ResourceKindConfig holds founder ranges for one resource kind.
type ResourceKindConfig struct {
	Decomposition RangeConfig `yaml:"decomposition"`
	Prolificacy   RangeConfig `yaml:"prolificacy"`
}

// ResourcesConfig holds resource parameters.
type ResourcesConfig struct {
	Food              ResourceKindConfig `yaml:"food"`
	Corpse            ResourceKindConfig `yaml:"corpse"`
	Pollen            ResourceKindConfig `yaml:"pollen"`
	DepletedThreshold float64            `yaml:"depleted_threshold"` // Display switches below this prolificacy
}

// CalendarConfig holds clock and seasonal parameters.
type CalendarConfig struct {
	DaysPerMonth     int     `yaml:"days_per_month"`
	MonthsPerYear    int     `yaml:"months_per_year"`
	SeasonDays       float64 `yaml:"season_days"`       // Period of the seasonal sine
	SeasonPhase      float64 `yaml:"season_phase"`      // Day offset of the seasonal sine
	ElevationDivisor float64 `yaml:"elevation_divisor"` // Shift = sin(...) * elevation / this
	Randomness       float64 `yaml:"randomness"`        // Extra uniform shift in [-r, r]
}

// TerrainConfig holds procedural terrain generation parameters.
type TerrainConfig struct {
	Seed           int64   `yaml:"seed"`
	Scale          float64 `yaml:"scale"`           // Base noise frequency per cell
	Octaves        int     `yaml:"octaves"`         // FBM octaves
	Smoothing      int     `yaml:"smoothing"`       // Box blur radius in cells (0 = off)
	RadiationZones int     `yaml:"radiation_zones"` // Number of radioactive sources
	ZoneRadius     float64 `yaml:"zone_radius"`     // Falloff radius of a source in cells
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindowDays int `yaml:"stats_window_days"`
	PerfWindow      int `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	GridSize int // World.Size / World.CellSize
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(defaultsYAML, &tree); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		var override map[string]any
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		mergeTree(tree, override)
	}

	// The schema sees the values as written; decoding into Config would
	// truncate fractional ints.
	if err := validateDocument(tree); err != nil {
		return nil, err
	}

	merged, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(merged, cfg); err != nil {
		return nil, fmt.Errorf("decoding merged config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// mergeTree overlays src onto dst, descending into nested mappings so only
// keys present in src are replaced.
func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				mergeTree(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.GridSize = c.World.Size / c.World.CellSize
}

// Refresh recomputes derived values after fields were changed in code.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
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
