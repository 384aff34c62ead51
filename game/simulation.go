package game

import (
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
)

// AdvanceDay runs one simulation day: the seasonal update on month end,
// then Producers, Distributors, Corpses, Food and Pollen in that order.
func (g *Game) AdvanceDay() {
	g.perfCollector.StartDay()

	g.perfCollector.StartPass(systems.PassSeason)
	if g.clock.MonthEnd() {
		g.terrain.ApplySeason(g.rng, g.clock.DayOfYear(), &g.cfg.Calendar)
		g.UpdateTemperatures()
	}

	g.perfCollector.StartPass(systems.PassProducers)
	g.updateProducers()

	g.perfCollector.StartPass(systems.PassDistributors)
	g.updateDistributors()

	g.perfCollector.StartPass(systems.PassCorpses)
	g.decayResources(components.ResourceCorpse)

	g.perfCollector.StartPass(systems.PassFood)
	g.decayResources(components.ResourceFood)

	g.perfCollector.StartPass(systems.PassPollen)
	g.decayResources(components.ResourcePollen)

	g.clock.Advance()

	g.perfCollector.StartPass(systems.PassTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndDay()
}

// UpdateTemperatures pushes the current temperature level into every living
// entity and refreshes its derived consumption and stress.
func (g *Game) UpdateTemperatures() {
	prec := g.cfg.Energy.Precision

	pq := g.producerFilter.Query()
	for pq.Next() {
		pos, cell, prod := pq.Get()
		gx, gy := g.grid.ToGrid(*pos)
		cell.Temperature = g.terrain.TemperatureLevel(gx, gy)
		systems.RefreshProducer(cell, prod, prec)
	}

	dq := g.distributorFilter.Query()
	for dq.Next() {
		pos, cell, dist := dq.Get()
		gx, gy := g.grid.ToGrid(*pos)
		cell.Temperature = g.terrain.TemperatureLevel(gx, gy)
		systems.RefreshDistributor(cell, dist, prec)
	}
}
