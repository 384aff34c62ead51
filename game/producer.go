package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
)

// updateProducers runs one day for every Producer alive at pass start.
func (g *Game) updateProducers() {
	for _, entity := range g.producerEntities() {
		if !g.world.Alive(entity) || !g.producerMap.Has(entity) {
			continue
		}
		g.updateProducer(entity)
	}
}

// updateProducer runs the Producer lifecycle: sense, age, metabolise,
// panic, produce, then pollinate from its own cell.
func (g *Game) updateProducer(entity ecs.Entity) {
	pc := &g.cfg.Producer
	ec := &g.cfg.Energy

	pos, cell, prod, area := g.producerMapper.Get(entity)
	gx, gy := g.grid.ToGrid(*pos)

	systems.Sense(g.grid, area, entity, gx, gy, pc.SenseRadius)

	if cell.Age > systems.DeathThreshold(g.rng, cell, ec.DeathJitter) {
		g.die(entity)
		return
	}
	systems.Metabolize(cell, ec.Precision)

	band := systems.UpdatePanic(cell, prod, &g.cfg.Genome, ec)
	if band != systems.BandNone {
		g.collector.RecordPanic(band)
		slog.Debug("panic",
			"band", band.String(),
			"panic_mode", prod.PanicMode,
			"energy", cell.CurrentEnergy,
			"production", cell.ProductionRate,
		)
	}
	if band.ForcesProduction() {
		g.produceFood(entity, cell, gx, gy, true)
	}

	if cell.Capacity-cell.CurrentEnergy != 0 && systems.Chance(g.rng, float64(prod.Productivity)/pc.ChanceDivisor) {
		g.produceFood(entity, cell, gx, gy, false)
	}

	if systems.Chance(g.rng, prod.PollenRate/pc.ChanceDivisor) {
		g.producePollen(entity, cell, prod, gx, gy)
	}

	g.lifetimeTracker.UpdateEnergy(entityID(entity), cell.CurrentEnergy)

	// Last: offspring join this archetype and may move its storage
	g.consumeOwnPollen(entity, area, gx, gy)
}

// produceFood places a Food near the Producer and converts production into
// energy. Nothing happens when no resource cell is free.
func (g *Game) produceFood(entity ecs.Entity, cell *components.Cell, gx, gy int, forced bool) {
	x, y, ok := systems.FindFreeCell(g.grid, g.rng, systems.ResourceLayer, gx, gy, g.cfg.Producer.FoodRadius)
	if !ok {
		return
	}
	g.createResource(components.ResourceFood, x, y)
	cell.CurrentEnergy = systems.Round(math.Min(cell.Capacity, cell.CurrentEnergy+cell.ProductionRate), g.cfg.Energy.Precision)

	g.collector.RecordFood(forced)
	g.lifetimeTracker.RecordFood(entityID(entity))
}

// producePollen places a Pollen carrying a mutated copy of the genome.
func (g *Game) producePollen(entity ecs.Entity, cell *components.Cell, prod *components.Producer, gx, gy int) {
	x, y, ok := systems.FindFreeCell(g.grid, g.rng, systems.ResourceLayer, gx, gy, g.cfg.Producer.PollenRadius)
	if !ok {
		return
	}
	genome := systems.Mutate(g.rng, components.GenomeOf(cell, prod), &g.cfg.Genome)
	g.createPollen(genome, x, y)

	g.collector.RecordPollenProduced()
	g.lifetimeTracker.RecordPollen(entityID(entity))
}

// consumeOwnPollen eats a grounded Pollen lying on the Producer's own cell
// and, with probability reproduction_rate, reproduces with its genome.
func (g *Game) consumeOwnPollen(entity ecs.Entity, area *components.SensedArea, gx, gy int) {
	slot, ok := area.At(0, 0)
	if !ok || slot.Resource.Resource != components.ResourcePollen {
		return
	}
	pollenEntity := slot.Resource.Entity
	if !g.world.Alive(pollenEntity) || !g.grid.Holds(systems.ResourceLayer, pollenEntity, gx, gy) {
		return
	}
	donor := g.pollenMap.Get(pollenEntity).Genome

	g.removeResource(pollenEntity)
	g.collector.RecordPollenConsumed()

	cell := g.cellMap.Get(entity)
	if !systems.Chance(g.rng, cell.ReproductionRate) {
		return
	}
	g.reproduce(entity, donor, gx, gy)
}

// reproduce creates up to offspring_count children around the parent, each
// recombined from the parent and donor genomes.
func (g *Game) reproduce(parent ecs.Entity, donor components.Genome, gx, gy int) {
	cell := g.cellMap.Get(parent)
	prod := g.producerMap.Get(parent)

	genome := components.GenomeOf(cell, prod)
	radioactivity := prod.Radioactivity
	energy := cell.Capacity / 2
	attempts := cell.OffspringCount
	generation := g.lifetimeTracker.Generation(entityID(parent)) + 1

	born := 0
	for i := 0; i < attempts; i++ {
		x, y, ok := systems.FindFreeCell(g.grid, g.rng, systems.EntityLayer, gx, gy, g.cfg.Producer.OffspringRadius)
		if !ok {
			continue
		}
		child := systems.Recombine(g.rng, genome, donor, radioactivity, &g.cfg.Genome)
		g.createProducer(x, y, child, energy, generation)
		g.collector.RecordBirth(components.KindProducer)
		g.lifetimeTracker.RecordChild(entityID(parent))
		born++
	}

	if born > 0 {
		g.collector.RecordReproduction()
		slog.Debug("reproduction", "gx", gx, "gy", gy, "offspring", born, "generation", generation)
	}
}
