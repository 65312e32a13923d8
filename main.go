package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in simulated seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	dt := flag.Float64("dt", 0, "Fixed timestep in seconds (0 = frame time, or physics.dt when headless)")

	// Launch overrides (negative = use config)
	prey := flag.Int("prey", -1, "Initial prey")
	predators := flag.Int("predators", -1, "Initial predators")
	plants := flag.Int("plants", -1, "Initial plants")
	regrow := flag.Float64("regrow", -1, "Plant regrowth delay in seconds")
	ecoType := flag.String("type", "", "Ecosystem type: forest, ocean or air")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	launch := cfg.Launch
	if *prey >= 0 {
		launch.Prey = *prey
	}
	if *predators >= 0 {
		launch.Predators = *predators
	}
	if *plants >= 0 {
		launch.Plants = *plants
	}
	if *regrow >= 0 {
		launch.RegrowDelay = *regrow
	}
	if *ecoType != "" {
		t, err := config.ParseEcosystemType(*ecoType)
		if err != nil {
			slog.Error("invalid ecosystem type", "error", err)
			os.Exit(1)
		}
		launch.Type = t
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Launch:         launch,
		DT:             float32(*dt),
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}
	runWindow(opts, *maxTicks)
}

// runHeadless runs the simulation without raylib.
func runHeadless(opts game.Options, maxTicks int) {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"prey", opts.Launch.Prey,
		"predators", opts.Launch.Predators,
		"plants", opts.Launch.Plants,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && g.Tick() >= int64(maxTicks) {
			slog.Info("max ticks reached",
				"tick", g.Tick(),
				"prey", g.PreyCount(),
				"predators", g.PredCount(),
			)
			return
		}
		if g.PreyCount() == 0 && g.PredCount() == 0 {
			slog.Info("ecosystem empty", "tick", g.Tick())
			return
		}
	}
}

// runWindow opens the viewer and runs until the window closes or quit is pressed.
func runWindow(opts game.Options, maxTicks int) {
	cfg := config.Cfg()
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Ecosystem")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() && !g.ShouldQuit() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && g.Started() && g.Tick() >= int64(maxTicks) {
			break
		}
	}
}
