package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
)

// PopulationError reports an initial population larger than the free grid.
type PopulationError struct {
	Requested int
	Free      int
}

func (e *PopulationError) Error() string {
	return fmt.Sprintf("population of %d exceeds %d free cells", e.Requested, e.Free)
}

func entityID(e ecs.Entity) uint32 {
	return uint32(e.ID())
}

// SpawnInitialPopulation places p Producers and d Distributors with founder
// traits on distinct random free cells.
func (g *Game) SpawnInitialPopulation(p, d int) error {
	free := g.grid.FreeCells(systems.EntityLayer)
	if p+d > len(free) {
		return &PopulationError{Requested: p + d, Free: len(free)}
	}
	g.rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	for i := 0; i < p; i++ {
		c := free[i]
		genome := g.founderGenome()
		g.createProducer(c[0], c[1], genome, genome.Capacity/2, 0)
	}
	for i := p; i < p+d; i++ {
		c := free[i]
		g.createDistributor(c[0], c[1])
	}

	slog.Info("population spawned", "producers", p, "distributors", d)
	return nil
}

// founderGenome draws a Producer genome uniformly inside the genome bounds.
func (g *Game) founderGenome() components.Genome {
	var genome components.Genome
	for _, t := range components.AllTraits {
		if t == components.TraitOffspringCount {
			r := g.cfg.Producer.InitialOffspring
			genome.OffspringCount = systems.UniformInt(g.rng, r.Min, r.Max)
			continue
		}
		b := systems.TraitBounds(&g.cfg.Genome, t)
		genome.Set(t, systems.Round(systems.Uniform(g.rng, b.Min, b.Max), b.Precision))
	}
	return genome
}

// createProducer spawns a Producer at grid cell (gx, gy) with environment
// levels read from the terrain there.
func (g *Game) createProducer(gx, gy int, genome components.Genome, energy float64, generation int) ecs.Entity {
	levels := g.terrain.LevelsAt(gx, gy)

	pos := g.grid.ToWorld(gx, gy)
	cell := components.Cell{
		Kind:          components.KindProducer,
		CurrentEnergy: systems.Round(energy, g.cfg.Energy.Precision),
		Temperature:   levels.Temperature,
	}
	prod := components.Producer{
		Elevation:     levels.Elevation,
		Humidity:      levels.Humidity,
		Radioactivity: levels.Radioactivity,
		Productivity:  levels.Productivity,
	}
	genome.Apply(&cell, &prod)
	systems.RefreshProducer(&cell, &prod, g.cfg.Energy.Precision)
	area := components.SensedArea{}

	entity := g.producerMapper.NewEntity(&pos, &cell, &prod, &area)
	g.mustPlace(systems.EntityLayer, components.Occupant{Entity: entity, Kind: components.KindProducer}, gx, gy)
	g.numProducers++

	g.lifetimeTracker.Register(entityID(entity), g.clock.Elapsed(), components.KindProducer, generation)

	return entity
}

// createDistributor spawns a Distributor with founder traits at (gx, gy).
func (g *Game) createDistributor(gx, gy int) ecs.Entity {
	dc := &g.cfg.Distributor
	prec := g.cfg.Energy.Precision
	draw := func(r config.RangeConfig) float64 {
		return systems.Round(systems.Uniform(g.rng, r.Min, r.Max), prec)
	}

	pos := g.grid.ToWorld(gx, gy)
	cell := components.Cell{
		Kind:             components.KindDistributor,
		Capacity:         draw(dc.Capacity),
		ProductionRate:   draw(dc.ProductionRate),
		Resilience:       draw(dc.Resilience),
		Lifespan:         draw(dc.Lifespan),
		AgingSpeed:       draw(dc.AgingSpeed),
		ReproductionRate: draw(dc.ReproductionRate),
		OffspringCount:   systems.UniformInt(g.rng, dc.OffspringCount.Min, dc.OffspringCount.Max),
		EvolutionRate:    draw(dc.EvolutionRate),
		Temperature:      g.terrain.TemperatureLevel(gx, gy),
	}
	cell.CurrentEnergy = systems.Round(cell.Capacity/2, prec)

	speed := draw(dc.MaxSpeed)
	dist := components.Distributor{
		MaxSpeed:       speed,
		MaxCarry:       systems.MaxCarry(speed, dc),
		DetectionRange: systems.UniformInt(g.rng, dc.DetectionRange.Min, dc.DetectionRange.Max),
	}
	systems.RefreshDistributor(&cell, &dist, prec)
	area := components.SensedArea{}

	entity := g.distributorMapper.NewEntity(&pos, &cell, &dist, &area)
	g.mustPlace(systems.EntityLayer, components.Occupant{Entity: entity, Kind: components.KindDistributor}, gx, gy)
	g.numDistributors++

	g.lifetimeTracker.Register(entityID(entity), g.clock.Elapsed(), components.KindDistributor, 0)

	return entity
}

// resourceKindConfig returns the founder ranges of a resource kind.
func (g *Game) resourceKindConfig(kind components.ResourceKind) config.ResourceKindConfig {
	switch kind {
	case components.ResourceCorpse:
		return g.cfg.Resources.Corpse
	case components.ResourcePollen:
		return g.cfg.Resources.Pollen
	default:
		return g.cfg.Resources.Food
	}
}

// newResource draws the decay parameters of a fresh resource.
func (g *Game) newResource(kind components.ResourceKind) components.Resource {
	rc := g.resourceKindConfig(kind)
	prec := g.cfg.Energy.Precision
	return components.Resource{
		Kind:              kind,
		DecompositionRate: systems.Round(systems.Uniform(g.rng, rc.Decomposition.Min, rc.Decomposition.Max), prec),
		Prolificacy:       systems.Round(systems.Uniform(g.rng, rc.Prolificacy.Min, rc.Prolificacy.Max), prec),
	}
}

// createResource places a Food or Corpse at (gx, gy). The slot must be free.
func (g *Game) createResource(kind components.ResourceKind, gx, gy int) ecs.Entity {
	pos := g.grid.ToWorld(gx, gy)
	res := g.newResource(kind)

	entity := g.resourceMapper.NewEntity(&pos, &res, &components.Grounded{})
	g.mustPlace(systems.ResourceLayer, components.Occupant{Entity: entity, Resource: kind}, gx, gy)
	return entity
}

// createPollen places a grounded Pollen carrying genome at (gx, gy).
func (g *Game) createPollen(genome components.Genome, gx, gy int) ecs.Entity {
	pos := g.grid.ToWorld(gx, gy)
	res := g.newResource(components.ResourcePollen)
	pollen := components.Pollen{Genome: genome}

	entity := g.pollenMapper.NewEntity(&pos, &res, &pollen, &components.Grounded{})
	g.mustPlace(systems.ResourceLayer, components.Occupant{Entity: entity, Resource: components.ResourcePollen}, gx, gy)
	return entity
}
