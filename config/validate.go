package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "meadow://config.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("adding config schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compiling config schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// ValidationError reports a config that passed parsing but is not usable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Validate checks the merged configuration against the embedded JSON schema
// and the cross-field rules the schema cannot express.
func (c *Config) Validate() error {
	tree, err := c.document()
	if err != nil {
		return err
	}
	if err := validateDocument(tree); err != nil {
		return err
	}

	if c.World.Size%c.World.CellSize != 0 {
		return &ValidationError{Field: "world.size", Reason: "must be a multiple of world.cell_size"}
	}
	traits := map[string]TraitConfig{
		"genome.capacity":          c.Genome.Capacity,
		"genome.production_rate":   c.Genome.ProductionRate,
		"genome.resilience":        c.Genome.Resilience,
		"genome.lifespan":          c.Genome.Lifespan,
		"genome.aging_speed":       c.Genome.AgingSpeed,
		"genome.reproduction_rate": c.Genome.ReproductionRate,
		"genome.offspring_count":   c.Genome.OffspringCount,
		"genome.pollen_rate":       c.Genome.PollenRate,
		"genome.ideal_temperature": c.Genome.IdealTemperature,
		"genome.evolution_rate":    c.Genome.EvolutionRate,
	}
	for name, t := range traits {
		if t.Min > t.Max {
			return &ValidationError{Field: name, Reason: "min exceeds max"}
		}
	}
	ranges := map[string]RangeConfig{
		"distributor.capacity":           c.Distributor.Capacity,
		"distributor.production_rate":    c.Distributor.ProductionRate,
		"distributor.resilience":         c.Distributor.Resilience,
		"distributor.lifespan":           c.Distributor.Lifespan,
		"distributor.aging_speed":        c.Distributor.AgingSpeed,
		"distributor.reproduction_rate":  c.Distributor.ReproductionRate,
		"distributor.evolution_rate":     c.Distributor.EvolutionRate,
		"distributor.max_speed":          c.Distributor.MaxSpeed,
		"resources.food.decomposition":   c.Resources.Food.Decomposition,
		"resources.food.prolificacy":     c.Resources.Food.Prolificacy,
		"resources.corpse.decomposition": c.Resources.Corpse.Decomposition,
		"resources.corpse.prolificacy":   c.Resources.Corpse.Prolificacy,
		"resources.pollen.decomposition": c.Resources.Pollen.Decomposition,
		"resources.pollen.prolificacy":   c.Resources.Pollen.Prolificacy,
	}
	for name, r := range ranges {
		if r.Min > r.Max {
			return &ValidationError{Field: name, Reason: "min exceeds max"}
		}
	}
	intRanges := map[string]IntRangeConfig{
		"producer.initial_offspring":  c.Producer.InitialOffspring,
		"distributor.offspring_count": c.Distributor.OffspringCount,
		"distributor.detection_range": c.Distributor.DetectionRange,
	}
	for name, r := range intRanges {
		if r.Min >= r.Max {
			return &ValidationError{Field: name, Reason: "min must be below max"}
		}
	}
	if c.Distributor.MinCarry > c.Distributor.MaxCarry {
		return &ValidationError{Field: "distributor.min_carry", Reason: "exceeds max_carry"}
	}
	return nil
}

// document converts the config into a generic YAML tree.
func (c *Config) document() (any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("re-reading config: %w", err)
	}
	return tree, nil
}

// validateDocument checks a generic YAML tree against the embedded schema.
// The tree goes through JSON so numbers and maps have the types the
// validator expects.
func validateDocument(tree any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encoding config document: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding config document: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}
