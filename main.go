package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = use config, time-based if unset)")
	days := flag.Int("days", 3600, "Stop after N days (0 = until extinction)")
	producers := flag.Int("producers", -1, "Initial producers (-1 = use config)")
	distributors := flag.Int("distributors", -1, "Initial distributors (-1 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	compress := flag.Bool("compress", false, "Write zstd-compressed CSV files")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	checkInvariants := flag.Bool("check-invariants", false, "Verify grid and registry bookkeeping every day")
	perf := flag.Bool("perf", false, "Log per-pass timings at the end of the run")
	writeConfig := flag.String("write-config", "", "Write the merged config to this path and exit")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *producers >= 0 {
		cfg.Population.Producers = *producers
	}
	if *distributors >= 0 {
		cfg.Population.Distributors = *distributors
	}
	if err := cfg.Refresh(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := cfg.WriteYAML(*writeConfig); err != nil {
			slog.Error("failed to write config", "error", err)
			os.Exit(1)
		}
		slog.Info("config written", "path", *writeConfig)
		return
	}

	output, err := telemetry.NewOutputManager(*outputDir, *compress)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	g := game.New(cfg, game.Options{
		Output:   output,
		LogStats: *logStats,
	})
	if err := g.SpawnInitialPopulation(cfg.Population.Producers, cfg.Population.Distributors); err != nil {
		slog.Error("failed to spawn population", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"seed", g.Seed(),
		"days", *days,
		"producers", cfg.Population.Producers,
		"distributors", cfg.Population.Distributors,
		"output_dir", output.Dir(),
	)

	if err := run(g, *days, *checkInvariants); err != nil {
		slog.Error("invariant check failed", "day", g.Clock().Elapsed(), "error", err)
		os.Exit(2)
	}

	g.LogWorldState()
	if *perf {
		g.Perf().LogStats()
	}
}

// run advances g until days have elapsed (0 = no limit) or both
// populations are extinct. With check set, bookkeeping is verified after
// every day and the first violation ends the run.
func run(g *game.Game, days int, check bool) error {
	for days == 0 || g.Clock().Elapsed() < days {
		g.AdvanceDay()

		if check {
			if err := g.CheckInvariants(); err != nil {
				return err
			}
		}
		if g.Extinct() {
			slog.Info("extinction", "day", g.Clock().Elapsed())
			return nil
		}
	}
	return nil
}
