package game

import (
	"math/rand/v2"
	"time"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/telemetry"
)

// Options holds configuration for engine initialization.
type Options struct {
	// Terrain to run on. Generated from the terrain config when nil.
	Terrain *systems.Terrain

	// Rng drives every random draw. Seeded from the world seed when nil.
	Rng *rand.Rand

	// Output receives telemetry CSV rows. Nil disables file output.
	Output *telemetry.OutputManager

	// LogStats logs every flushed window and bookmark.
	LogStats bool

	// StatsCallback is called with every flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// newRNG builds the simulation RNG from the world seed. Seed 0 uses the clock.
func newRNG(cfg *config.Config) (*rand.Rand, uint64) {
	seed := cfg.World.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}
