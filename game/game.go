// Package game drives an ecosystem.World: the frame loop, controls, telemetry and drawing.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/camera"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/ecosystem"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
	"github.com/pthm-cable/ecosim/ui"
)

// Options configures game behavior.
type Options struct {
	Seed           int64   // RNG seed (0 = time-based)
	LogStats       bool    // Output telemetry via slog
	StatsWindowSec float64 // Stats window size in simulated seconds
	OutputDir      string  // Directory for CSV output (empty = disabled)
	Headless       bool    // Run without graphics
	Launch         config.LaunchConfig
	DT             float32 // Fixed timestep (0 = frame time, or physics.dt when headless)

	// StatsCallback receives every flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the running simulation plus everything around it.
type Game struct {
	world  *ecosystem.World
	launch config.LaunchConfig
	seed   int64
	runs   int
	dt     float32

	started bool
	paused  bool
	quit    bool
	pending ui.ControlActions

	dayNight *DayNight
	palette  ui.Palette

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsWindowSec   float64
	logStats         bool
	statsCallback    func(telemetry.WindowStats)

	// Extinction tracking for lifecycle logs
	lastPrey, lastPred int

	// Viewer state (nil when headless)
	setup      *ui.SetupMenu
	controls   *ui.ControlPanel
	stats      *ui.StatsPanel
	hud        *ui.HUD
	overlays   *ui.OverlayRegistry
	uiRenderer *ui.Renderer
	cam        *camera.Camera
	phases     *systems.SystemRegistry
	prey       systems.Profile
	predator   systems.Profile

	selected    ecs.Entity
	hasSelected bool
}

// NewGameWithOptions creates a game and launches its first ecosystem.
// A graphical game starts behind the setup menu; the menu's launch replaces the first world.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	if err := opts.Launch.Validate(); err != nil {
		return nil, err
	}

	dt := opts.DT
	if dt <= 0 && opts.Headless {
		dt = cfg.Derived.DT32
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}

	g := &Game{
		launch:         opts.Launch,
		seed:           opts.Seed,
		dt:             dt,
		started:        opts.Headless,
		dayNight:       NewDayNight(cfg.Visual.DayNightPeriod),
		palette:        ui.PaletteFor(opts.Launch.Type),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager:  output,
		statsWindowSec: statsWindow,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		prey:           systems.PreyProfile(),
		predator:       systems.PredatorProfile(),
	}

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if !opts.Headless {
		g.initViewer()
	}

	if err := g.launchWorld(opts.Launch); err != nil {
		g.Unload()
		return nil, err
	}
	return g, nil
}

// initViewer builds the UI panels. Requires an open raylib window.
func (g *Game) initViewer() {
	cfg := config.Cfg()
	screenW := int32(cfg.Screen.Width)
	screenH := int32(cfg.Screen.Height)

	g.setup = ui.NewSetupMenu(screenW, screenH, g.launch)
	g.controls = ui.NewControlPanel(10, 40, 240, g.launch)
	g.stats = ui.NewStatsPanel(screenW-260, 40, 250, cfg.Visual.HistoryLength, g.palette)
	g.hud = ui.NewHUD()
	g.overlays = ui.NewOverlayRegistry()
	g.uiRenderer = ui.NewRenderer()
	g.cam = camera.New(float32(screenW), float32(screenH), cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	g.phases = systems.NewSystemRegistry()
	g.phases.Register(systems.SystemInfo{
		ID:          telemetry.PhaseTelemetry,
		Name:        "Telemetry",
		Description: "Window counters, flushes and bookmarks",
		Category:    "telemetry",
	})
}

// launchWorld replaces the running ecosystem with a fresh one built from l.
// On error the current world keeps running.
func (g *Game) launchWorld(l config.LaunchConfig) error {
	if err := l.Validate(); err != nil {
		return err
	}
	cfg := config.Cfg()

	seed := g.seed
	if seed != 0 {
		seed += int64(g.runs)
	}

	world, err := ecosystem.NewWorld(l.Prey, l.Predators, l.Plants,
		cfg.Derived.WorldW32, cfg.Derived.WorldH32,
		ecosystem.WithSeed(seed),
		ecosystem.WithPhaseTimer(g.perfCollector),
	)
	if err != nil {
		return fmt.Errorf("launching ecosystem: %w", err)
	}
	if err := world.SetPlantRegrowInterval(float32(l.RegrowDelay)); err != nil {
		return err
	}

	g.world = world
	g.launch = l
	g.runs++
	g.lastPrey = world.PreyCount()
	g.lastPred = world.PredatorCount()
	g.hasSelected = false
	g.dayNight.Reset()
	g.palette = ui.PaletteFor(l.Type)

	// A new run restarts simulated time, so windows and bookmark history restart with it.
	g.collector = telemetry.NewCollector(g.statsWindowSec)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize)

	if g.cam != nil {
		g.cam.Reset()
	}
	if g.stats != nil {
		g.stats.Reset()
		g.stats.SetPalette(g.palette)
	}

	slog.Info("ecosystem_launched",
		"run", g.runs,
		"seed", seed,
		"type", string(l.Type),
		"prey", l.Prey,
		"predators", l.Predators,
		"plants", l.Plants,
		"regrow_delay", l.RegrowDelay,
	)
	return nil
}

// Relaunch rebuilds the ecosystem from l. Day/night restarts at day.
func (g *Game) Relaunch(l config.LaunchConfig) error {
	start := time.Now()
	if err := g.launchWorld(l); err != nil {
		return err
	}
	slog.Debug("relaunch_complete", "took", time.Since(start))
	return nil
}

// Unload releases resources and flushes output files.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output files", "error", err)
		}
		g.outputManager = nil
	}
}

// World returns the running ecosystem.
func (g *Game) World() *ecosystem.World {
	return g.world
}

// Tick returns the number of updates applied to the running ecosystem.
func (g *Game) Tick() int64 {
	return g.world.Tick()
}

// PreyCount returns the living prey.
func (g *Game) PreyCount() int {
	return g.world.PreyCount()
}

// PredCount returns the living predators.
func (g *Game) PredCount() int {
	return g.world.PredatorCount()
}

// Launch returns the configuration of the running ecosystem.
func (g *Game) Launch() config.LaunchConfig {
	return g.launch
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Night reports whether the viewer is in its night phase.
func (g *Game) Night() bool {
	return g.dayNight.Night()
}

// Started reports whether the setup menu has been dismissed.
func (g *Game) Started() bool {
	return g.started
}

// ShouldQuit reports whether quit was requested.
func (g *Game) ShouldQuit() bool {
	return g.quit
}
