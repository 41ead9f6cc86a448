package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Grow without graphics")
	logStats := flag.Bool("log-stats", false, "Log stats for every generation")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Plant seed (0 = time-based)")
	species := flag.Int64("species", 0, "Species seed (0 = time-based)")
	generations := flag.Int("generations", 0, "Headless: stop after N generations (0 = until fully grown)")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	plantSeed := *seed
	if plantSeed == 0 {
		plantSeed = time.Now().UnixNano()
	}
	speciesSeed := *species
	if speciesSeed == 0 {
		speciesSeed = time.Now().UnixNano() ^ 0x5eed
	}

	// JSON for headless runs, pretty console output for the viewer
	level := parseLevel(*logLevel)
	var logger *slog.Logger
	if *headless {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	} else {
		handler := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           log.Level(level),
			Prefix:          "sprout",
		})
		logger = slog.New(handler)
	}
	slog.SetDefault(logger)

	opts := game.Options{
		SpeciesSeed: speciesSeed,
		PlantSeed:   plantSeed,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		Headless:    *headless,
		Logger:      logger,
	}

	if *headless {
		g, err := game.NewGame(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless growth",
			"species_seed", speciesSeed,
			"plant_seed", plantSeed,
			"generations", *generations,
		)

		for gen := 1; ; gen++ {
			done, err := g.UpdateHeadless()
			if err != nil {
				slog.Error("growth failed", "generation", gen, "error", err)
				return
			}
			if done || (*generations > 0 && gen >= *generations) {
				slog.Info("growth finished", "stats", g.LastStats())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Sprout")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

// parseLevel maps a level name to slog; unknown names mean info.
func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
