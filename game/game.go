// Package game runs the ecosystem: it owns the ECS world, the grid and the
// terrain, and advances them one day at a time.
package game

import (
	"log/slog"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/telemetry"
)

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand
	seed  uint64

	// Archetype mappers
	producerMapper *ecs.Map4[
		components.Position,
		components.Cell,
		components.Producer,
		components.SensedArea,
	]
	distributorMapper *ecs.Map4[
		components.Position,
		components.Cell,
		components.Distributor,
		components.SensedArea,
	]
	resourceMapper *ecs.Map3[
		components.Position,
		components.Resource,
		components.Grounded,
	]
	pollenMapper *ecs.Map4[
		components.Position,
		components.Resource,
		components.Pollen,
		components.Grounded,
	]

	// Registries
	producerFilter    *ecs.Filter3[components.Position, components.Cell, components.Producer]
	distributorFilter *ecs.Filter3[components.Position, components.Cell, components.Distributor]
	resourceFilter    *ecs.Filter3[components.Position, components.Resource, components.Grounded]

	// Individual component mappers for lookups
	posMap         *ecs.Map[components.Position]
	cellMap        *ecs.Map[components.Cell]
	producerMap    *ecs.Map[components.Producer]
	distributorMap *ecs.Map[components.Distributor]
	senseMap       *ecs.Map[components.SensedArea]
	resourceMap    *ecs.Map[components.Resource]
	pollenMap      *ecs.Map[components.Pollen]
	groundedMap    *ecs.Map[components.Grounded]

	grid    *systems.WorldGrid
	terrain *systems.Terrain
	clock   *systems.Clock
	passes  *systems.PassRegistry

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)

	// Population counts, kept in step with the registries
	numProducers    int
	numDistributors int
}

// New creates an engine with an empty world.
// Call SpawnInitialPopulation before the first AdvanceDay.
func New(cfg *config.Config, opts Options) *Game {
	world := ecs.NewWorld()

	rng, seed := opts.Rng, cfg.World.Seed
	if rng == nil {
		rng, seed = newRNG(cfg)
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rng,
		seed:  seed,

		producerMapper: ecs.NewMap4[
			components.Position,
			components.Cell,
			components.Producer,
			components.SensedArea,
		](world),
		distributorMapper: ecs.NewMap4[
			components.Position,
			components.Cell,
			components.Distributor,
			components.SensedArea,
		](world),
		resourceMapper: ecs.NewMap3[
			components.Position,
			components.Resource,
			components.Grounded,
		](world),
		pollenMapper: ecs.NewMap4[
			components.Position,
			components.Resource,
			components.Pollen,
			components.Grounded,
		](world),

		producerFilter:    ecs.NewFilter3[components.Position, components.Cell, components.Producer](world),
		distributorFilter: ecs.NewFilter3[components.Position, components.Cell, components.Distributor](world),
		resourceFilter:    ecs.NewFilter3[components.Position, components.Resource, components.Grounded](world),

		posMap:         ecs.NewMap[components.Position](world),
		cellMap:        ecs.NewMap[components.Cell](world),
		producerMap:    ecs.NewMap[components.Producer](world),
		distributorMap: ecs.NewMap[components.Distributor](world),
		senseMap:       ecs.NewMap[components.SensedArea](world),
		resourceMap:    ecs.NewMap[components.Resource](world),
		pollenMap:      ecs.NewMap[components.Pollen](world),
		groundedMap:    ecs.NewMap[components.Grounded](world),

		grid:   systems.NewWorldGrid(cfg.World.Size, cfg.World.CellSize),
		clock:  systems.NewClock(cfg.Calendar.DaysPerMonth, cfg.Calendar.MonthsPerYear),
		passes: systems.NewPassRegistry(),

		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindowDays),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		outputManager:    opts.Output,
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
	}
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow, g.passes)

	g.terrain = opts.Terrain
	if g.terrain == nil {
		g.terrain = systems.NewTerrainGenerator(&cfg.Terrain, g.grid.Size()).Generate()
	}

	slog.Debug("engine created",
		"grid", g.grid.Size(),
		"cell_size", cfg.World.CellSize,
		"seed", g.seed,
	)

	return g
}

// Config returns the engine's configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// Grid returns the occupancy grid.
func (g *Game) Grid() *systems.WorldGrid { return g.grid }

// Terrain returns the environment layers.
func (g *Game) Terrain() *systems.Terrain { return g.terrain }

// Seed returns the seed the RNG was built from, 0 for an injected RNG
// without a configured seed.
func (g *Game) Seed() uint64 { return g.seed }

// Perf returns the rolling per-pass timings.
func (g *Game) Perf() telemetry.PerfStats { return g.perfCollector.Stats() }

// Extinct reports whether both populations are gone.
func (g *Game) Extinct() bool {
	return g.numProducers == 0 && g.numDistributors == 0
}

// mustPlace records occ on the grid. A conflict means the bookkeeping is
// broken, so it panics with the *systems.OccupiedSlotError.
func (g *Game) mustPlace(l systems.Layer, occ components.Occupant, gx, gy int) {
	if err := g.grid.Place(l, occ, gx, gy); err != nil {
		panic(err)
	}
}

// producerEntities snapshots the Producer registry so a pass can mutate
// the world while walking it.
func (g *Game) producerEntities() []ecs.Entity {
	out := make([]ecs.Entity, 0, g.numProducers)
	query := g.producerFilter.Query()
	for query.Next() {
		out = append(out, query.Entity())
	}
	return out
}

// distributorEntities snapshots the Distributor registry.
func (g *Game) distributorEntities() []ecs.Entity {
	out := make([]ecs.Entity, 0, g.numDistributors)
	query := g.distributorFilter.Query()
	for query.Next() {
		out = append(out, query.Entity())
	}
	return out
}

// resourceEntities snapshots the grounded resources of one kind.
func (g *Game) resourceEntities(kind components.ResourceKind) []ecs.Entity {
	var out []ecs.Entity
	query := g.resourceFilter.Query()
	for query.Next() {
		_, res, _ := query.Get()
		if res.Kind == kind {
			out = append(out, query.Entity())
		}
	}
	return out
}
