package game

import (
	"math"
	"testing"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPollenLandsWithinRadius(t *testing.T) {
	g := newTestGame(t, 11, flatTerrain(11, 0.5))
	g.createProducer(5, 5, testGenome(), 0.6, 0)

	g.AdvanceDay()

	var pollen []ResourceView
	for _, r := range g.Resources() {
		if r.Kind == components.ResourcePollen {
			pollen = append(pollen, r)
		}
	}
	if len(pollen) != 1 {
		t.Fatalf("pollen count = %d, want 1", len(pollen))
	}
	if d := chebyshev(pollen[0].GX, pollen[0].GY, 5, 5); d < 1 || d > g.cfg.Producer.PollenRadius {
		t.Errorf("pollen at (%d,%d), distance %d from producer", pollen[0].GX, pollen[0].GY, d)
	}
	if c := g.Counts(); c.Food != 1 {
		t.Errorf("food = %d, want 1", c.Food)
	}
	mustCheck(t, g)
}

func TestCrisisForcesProduction(t *testing.T) {
	g := newTestGame(t, 11, nil)
	genome := testGenome()
	genome.Capacity = 1
	genome.Lifespan = 1
	genome.AgingSpeed = 0.002
	genome.PollenRate = 0
	e := g.createProducer(5, 5, genome, 0.05, 0)

	g.AdvanceDay()

	cell, prod := g.cellMap.Get(e), g.producerMap.Get(e)
	if prod.PanicMode != g.cfg.Energy.PanicLimit {
		t.Errorf("PanicMode = %d, want %d", prod.PanicMode, g.cfg.Energy.PanicLimit)
	}
	if cell.ProductionRate <= genome.ProductionRate {
		t.Errorf("ProductionRate = %v, want above %v", cell.ProductionRate, genome.ProductionRate)
	}
	if cell.ProductionRate != g.cfg.Genome.ProductionRate.Max {
		t.Errorf("ProductionRate = %v, want clamped to %v", cell.ProductionRate, g.cfg.Genome.ProductionRate.Max)
	}
	if c := g.Counts(); c.Food != 1 {
		t.Errorf("food = %d, want 1 forced", c.Food)
	}
	// 0.05 - 0.0039 consumption + 0.1 from the forced Food
	if !approx(cell.CurrentEnergy, 0.1461) {
		t.Errorf("CurrentEnergy = %v, want 0.1461", cell.CurrentEnergy)
	}
}

func TestReproduceAveragesDonor(t *testing.T) {
	g := newTestGame(t, 11, nil)
	genome := testGenome()
	genome.Resilience = 0.2
	genome.EvolutionRate = 0
	parent := g.createProducer(5, 5, genome, 0.6, 0)

	donor := testGenome()
	donor.Resilience = 1.0
	g.reproduce(parent, donor, 5, 5)

	if g.numProducers != 1+genome.OffspringCount {
		t.Fatalf("producers = %d, want %d", g.numProducers, 1+genome.OffspringCount)
	}
	for _, v := range g.Producers() {
		if v.Entity == parent {
			continue
		}
		cell := g.cellMap.Get(v.Entity)
		if cell.Resilience != 0.6 {
			t.Errorf("offspring resilience = %v, want 0.6", cell.Resilience)
		}
		if cell.CurrentEnergy != genome.Capacity/2 {
			t.Errorf("offspring energy = %v, want %v", cell.CurrentEnergy, genome.Capacity/2)
		}
		if chebyshev(v.GX, v.GY, 5, 5) > g.cfg.Producer.OffspringRadius {
			t.Errorf("offspring at (%d,%d) outside radius", v.GX, v.GY)
		}
		if gen := g.lifetimeTracker.Generation(entityID(v.Entity)); gen != 1 {
			t.Errorf("offspring generation = %d, want 1", gen)
		}
	}
	if got := g.lifetimeTracker.Get(entityID(parent)).Children; got != genome.OffspringCount {
		t.Errorf("parent children = %d, want %d", got, genome.OffspringCount)
	}
}

func TestReproduceNeedsFreeCells(t *testing.T) {
	g := newTestGame(t, 3, nil)
	parent := g.createProducer(1, 1, testGenome(), 0.6, 0)
	for _, c := range g.grid.FreeCells(systems.EntityLayer) {
		g.createProducer(c[0], c[1], testGenome(), 0.6, 0)
	}

	g.reproduce(parent, testGenome(), 1, 1)

	if g.numProducers != 9 {
		t.Errorf("producers = %d, want 9", g.numProducers)
	}
	mustCheck(t, g)
}

func TestProducerConsumesOwnPollen(t *testing.T) {
	g := newTestGame(t, 11, nil)
	parent := g.createProducer(5, 5, inertGenome(), 0.6, 0)
	g.createPollen(testGenome(), 5, 5)

	g.AdvanceDay()

	if c := g.Counts(); c.Pollen != 0 {
		t.Errorf("pollen = %d, want 0 after consumption", c.Pollen)
	}
	// oneSource makes reproduction certain
	if g.numProducers != 1+inertGenome().OffspringCount {
		t.Errorf("producers = %d, want %d", g.numProducers, 1+inertGenome().OffspringCount)
	}
	if !g.world.Alive(parent) {
		t.Error("parent died")
	}
}
