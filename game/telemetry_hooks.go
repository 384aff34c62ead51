package game

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	day := g.clock.Elapsed()
	if !g.collector.ShouldFlush(day) {
		return
	}

	stats := g.collector.Flush(day, g.census())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndDay); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// census samples populations, resources and trait distributions.
func (g *Game) census() telemetry.Census {
	c := telemetry.Census{
		Year:         g.clock.Year(),
		Month:        g.clock.Month(),
		Producers:    g.numProducers,
		Distributors: g.numDistributors,
	}

	pq := g.producerFilter.Query()
	for pq.Next() {
		_, cell, _ := pq.Get()
		c.ProducerEnergies = append(c.ProducerEnergies, cell.CurrentEnergy)
		c.ProductionRates = append(c.ProductionRates, cell.ProductionRate)
		c.Resiliences = append(c.Resiliences, cell.Resilience)
		c.EvolutionRates = append(c.EvolutionRates, cell.EvolutionRate)
	}

	dq := g.distributorFilter.Query()
	for dq.Next() {
		_, cell, dist := dq.Get()
		c.DistributorEnergies = append(c.DistributorEnergies, cell.CurrentEnergy)
		c.CarriedPollen += dist.CarryingCount()
	}

	rq := g.resourceFilter.Query()
	for rq.Next() {
		_, res, _ := rq.Get()
		switch res.Kind {
		case components.ResourceFood:
			c.Food++
		case components.ResourceCorpse:
			c.Corpses++
		case components.ResourcePollen:
			c.GroundedPollen++
		}
	}

	c.MaxGeneration = g.lifetimeTracker.MaxGeneration()
	c.MeanTemperature = g.meanTemperature()
	return c
}

// meanTemperature averages the raw temperature layer.
func (g *Game) meanTemperature() float64 {
	n := g.terrain.Size() * g.terrain.Size()
	if n == 0 {
		return 0
	}
	return systems.Round(mat.Sum(g.terrain.Temperature)/float64(n), g.cfg.Energy.Precision)
}
