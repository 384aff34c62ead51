package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxDays    int
	seeds      []uint64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
	invalid     int     // configs rejected by validation
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxDays int, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxDays:    maxDays,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Invalid returns how many parameter vectors produced an invalid config.
func (fe *FitnessEvaluator) Invalid() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.invalid
}

// Minimum viable population: if Producers stay below this for
// extinctionGraceDays consecutive days, the run counts as functionally extinct.
const (
	minViablePop        = 5
	extinctionGraceDays = 60
	warmupDays          = 30
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalDays int                     // days before functional extinction (or maxDays if survived)
	finalPop     int                     // producers + distributors at the end
	windowStats  []telemetry.WindowStats // collected via StatsCallback each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Refresh(); err != nil {
		fe.mu.Lock()
		fe.invalid++
		fe.lastQuality = 0
		fe.mu.Unlock()
		return 0
	}

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			result := fe.runSimulation(cfg, s)
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness: computeFitness(result, quality),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxDays, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(base *config.Config, seed uint64) *runResult {
	cfg := base.Clone()
	cfg.World.Seed = seed

	result := &runResult{}
	g := game.New(cfg, game.Options{
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err := g.SpawnInitialPopulation(cfg.Population.Producers, cfg.Population.Distributors); err != nil {
		return result
	}

	belowDays := 0
	for day := 1; day <= fe.maxDays; day++ {
		g.AdvanceDay()

		counts := g.Counts()
		result.finalPop = counts.Producers + counts.Distributors
		if day < warmupDays {
			continue
		}

		if counts.Producers == 0 {
			result.survivalDays = day
			return result
		}
		if counts.Producers < minViablePop {
			belowDays++
		} else {
			belowDays = 0
		}
		if belowDays >= extinctionGraceDays {
			result.survivalDays = day
			return result
		}
	}

	result.survivalDays = fe.maxDays
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalDays × (1.0 + 0.2 × quality) + 0.1 × finalPop)
func computeFitness(r *runResult, quality float64) float64 {
	return -(float64(r.survivalDays)*(1.0+0.2*quality) + 0.1*float64(r.finalPop))
}

// Quality component weights.
const (
	qualityWeightStability   = 0.35
	qualityWeightEnergy      = 0.25
	qualityWeightPollination = 0.25
	qualityWeightCarriers    = 0.15

	qualityWarmupWindows = 1 // skip first N windows (warmup)
	qualityMinPop        = 5 // exclude windows with fewer producers than this
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var energySum, pollinationSum, carrierSum float64
	counts := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Producers < qualityMinPop {
			continue
		}
		counts = append(counts, float64(w.Producers))

		// Median producer energy near half capacity
		energySum += math.Exp(-math.Pow((w.ProducerEnergyP50-0.5)/0.2, 2))

		// Pollen actually reaching producers
		if w.PollenDropped > 0 {
			perProducer := float64(w.PollenConsumed) / float64(w.Producers)
			pollinationSum += 1.0 - math.Exp(-perProducer*10)
		}

		if w.Distributors > 0 {
			carrierSum++
		}
	}

	n := float64(len(counts))
	if n == 0 {
		return 0
	}

	stabilityScore := 0.0
	if len(counts) >= 2 {
		c := cv(counts)
		stabilityScore = math.Exp(-c * c)
	}

	quality := qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/n +
		qualityWeightPollination*pollinationSum/n +
		qualityWeightCarriers*carrierSum/n

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
