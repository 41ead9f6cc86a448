// Package game runs the plant viewer: it owns the garden session, the
// telemetry outputs and, in graphical mode, the camera and renderers.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sprout/camera"
	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/garden"
	"github.com/pthm-cable/sprout/renderer"
	"github.com/pthm-cable/sprout/telemetry"
	"github.com/pthm-cable/sprout/ui"
)

// Options configures a Game.
type Options struct {
	SpeciesSeed int64
	PlantSeed   int64
	LogStats    bool   // log every generation's stats
	OutputDir   string // CSV and config output, empty to disable
	Headless    bool
	Logger      *slog.Logger
}

// Game holds the viewer state.
type Game struct {
	cfg      *config.Config
	logger   *slog.Logger
	session  *garden.Session
	seeds    *rand.Rand // seeds for new plants and species
	headless bool

	// Telemetry
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	// Graphics, nil when headless
	camera             *camera.Orbit
	plantRenderer      *renderer.PlantRenderer
	backgroundRenderer *renderer.BackgroundRenderer
	hud                *ui.HUD
	panel              *ui.Panel

	screenWidth, screenHeight int32
	message                   string
}

// NewGame creates the session and outputs. Graphical resources are created
// without touching the window, so NewGame may run before InitWindow.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	session, err := garden.New(cfg, opts.SpeciesSeed, opts.PlantSeed, logger)
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:           cfg,
		logger:        logger,
		session:       session,
		seeds:         rand.New(rand.NewPCG(uint64(opts.SpeciesSeed), uint64(opts.PlantSeed))),
		headless:      opts.Headless,
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager: om,
		logStats:      opts.LogStats,
		screenWidth:   int32(cfg.Screen.Width),
		screenHeight:  int32(cfg.Screen.Height),
	}

	if !opts.Headless {
		c := cfg.Camera
		g.camera = camera.New(r3.Vec{Y: c.TargetY}, c.Distance, c.MinDistance, c.MaxDistance, c.MinPolar)
		g.plantRenderer = renderer.NewPlantRenderer(float32(c.MaxDistance), float32(c.Fovy))
		g.backgroundRenderer = renderer.NewBackgroundRenderer(g.screenWidth, g.screenHeight)
		g.hud = ui.NewHUD()
		g.panel = ui.NewPanel(cfg.Derived.ScreenW32, cfg.Derived.SwayAmplitude32, 4*cfg.Derived.SwayAmplitude32)
	}

	g.recordGeneration()
	return g, nil
}

// Session returns the garden session.
func (g *Game) Session() *garden.Session { return g.session }

// Grow applies one growth cycle as its own perf frame and records its stats.
func (g *Game) Grow() error {
	g.perfCollector.StartFrame()
	err := g.grow()
	g.perfCollector.EndFrame()
	return err
}

// grow times the growth cycle inside the current frame.
func (g *Game) grow() error {
	g.perfCollector.StartPhase(telemetry.PhaseGrow)
	err := g.session.Grow()
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	if err != nil {
		return err
	}
	g.recordGeneration()
	return nil
}

// UpdateHeadless grows one generation and reports whether growth is over:
// every tip has terminated or the node limit was hit.
func (g *Game) UpdateHeadless() (done bool, err error) {
	if err := g.Grow(); err != nil {
		if errors.Is(err, garden.ErrNodeLimit) {
			g.logger.Warn("stopping growth", "error", err)
			return true, nil
		}
		return true, err
	}
	g.session.Step()
	return g.session.Stats().Done(), nil
}

// apply runs a control panel or keyboard action.
func (g *Game) apply(action ui.Action) {
	var err error
	switch action {
	case ui.ActionNone:
		return
	case ui.ActionGrow:
		err = g.grow()
	case ui.ActionNewPlant:
		err = g.session.Regenerate(g.seeds.Int64())
		g.recordGeneration()
	case ui.ActionNewSpecies:
		err = g.session.NewSpecies(g.seeds.Int64(), g.seeds.Int64())
		g.recordGeneration()
	case ui.ActionRebuild:
		err = g.session.Rebuild()
	case ui.ActionDropLeaves:
		n := g.session.DropLeaves()
		g.message = fmt.Sprintf("%d leaves dropped", n)
		return
	}

	if err != nil {
		g.logger.Error("action failed", "action", action, "error", err)
		g.message = err.Error()
		return
	}
	g.message = ""
}

// Unload flushes and closes outputs.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
}
