// Package garden ties one plant's lifecycle together: species gene, sample
// stream, growth tree, visual scene and sway timer.
package garden

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/genetics"
	"github.com/pthm-cable/sprout/plant"
	"github.com/pthm-cable/sprout/random"
	"github.com/pthm-cable/sprout/systems"
	"github.com/pthm-cable/sprout/telemetry"
)

// ErrNodeLimit is returned by Grow when the plant already has the configured
// maximum number of nodes.
var ErrNodeLimit = errors.New("plant node limit reached")

// Session owns the plant currently on display.
type Session struct {
	cfg    *config.Config
	logger *slog.Logger

	id          uuid.UUID
	speciesSeed int64
	plantSeed   int64

	lineage *genetics.Lineage // nil unless the type grammar is on
	gene    *genetics.Gene
	stream  *random.Stream
	root    *plant.Node
	scene   *systems.Scene

	generation int
	nodes      int
	timer      float64
	amplitude  float64
}

// New creates a session with a species derived from speciesSeed and a first
// plant grown from plantSeed. A nil logger uses slog.Default.
func New(cfg *config.Config, speciesSeed, plantSeed int64, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("garden: nil config")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		cfg:       cfg,
		logger:    logger,
		scene:     systems.NewScene(),
		amplitude: cfg.Animation.SwayAmplitude,
	}
	if err := s.NewSpecies(speciesSeed, plantSeed); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSpecies samples a new species gene and starts a fresh plant from it.
func (s *Session) NewSpecies(speciesSeed, plantSeed int64) error {
	var (
		lineage *genetics.Lineage
		gene    *genetics.Gene
		err     error
	)
	if s.cfg.Growth.TypeGrammar {
		lineage, err = genetics.NewLineage(speciesSeed, s.cfg.Gene)
		if err == nil {
			gene = lineage.Gene(genetics.Root)
		}
	} else {
		gene, err = genetics.NewGene(speciesSeed, genetics.Root, s.cfg.Gene)
	}
	if err != nil {
		return fmt.Errorf("new species %d: %w", speciesSeed, err)
	}

	s.speciesSeed = speciesSeed
	s.lineage = lineage
	s.gene = gene
	s.logger.Info("new species",
		"species_seed", speciesSeed,
		"fork_probability", gene.ForkProbability(),
		"min_radius", gene.MinRadius(),
		"type_grammar", lineage != nil,
	)
	return s.Regenerate(plantSeed)
}

// Regenerate replaces the plant with a new one of the same species grown
// from plantSeed.
func (s *Session) Regenerate(plantSeed int64) error {
	s.plantSeed = plantSeed
	s.stream = random.NewStream(plantSeed)
	if err := s.plant(); err != nil {
		return err
	}
	s.generation = 0
	s.id = uuid.New()
	s.logger.Info("new plant", "plant_id", s.id, "plant_seed", plantSeed)
	return nil
}

// Rebuild replays the current plant from its seed: the stream restarts, the
// root is recreated and regrown to the same generation. The result is
// identical to the plant it replaces.
func (s *Session) Rebuild() error {
	age := s.generation
	s.stream.Reset()
	if err := s.plant(); err != nil {
		return err
	}
	s.generation = 0
	for s.generation < age {
		if err := s.Grow(); err != nil {
			return fmt.Errorf("rebuild: %w", err)
		}
	}
	s.logger.Debug("rebuilt plant", "plant_id", s.id, "generation", age)
	return nil
}

// plant clears the scene and creates a new root from the current stream.
func (s *Session) plant() error {
	s.scene.Clear()
	f := &plant.Factory{
		Builder:  s.scene,
		Lineage:  s.lineage,
		Settings: s.cfg.Growth.Settings,
	}
	root, err := f.CreatePlant(s.gene, s.cfg.Growth.BaseRadius, s.stream)
	if err != nil {
		return fmt.Errorf("create plant: %w", err)
	}
	s.root = root
	s.nodes = 1
	s.layout()
	return nil
}

// Grow advances the plant one generation. It refuses once the plant has
// reached growth.max_nodes.
func (s *Session) Grow() error {
	if limit := s.cfg.Growth.MaxNodes; limit > 0 && s.nodes >= limit {
		return fmt.Errorf("%w: %d nodes", ErrNodeLimit, s.nodes)
	}
	s.root.Grow()
	s.generation++
	s.nodes = s.root.Count()
	s.layout()
	return nil
}

// Update advances the sway timer by dt seconds and re-poses the scene.
func (s *Session) Update(dt float64) {
	s.timer += dt * s.cfg.Derived.TimeRate
	s.layout()
}

// Step advances the sway timer by one fixed step, the per-frame amount at
// the configured rate.
func (s *Session) Step() {
	s.timer += s.cfg.Animation.TimeStep
	s.layout()
}

func (s *Session) layout() {
	s.scene.Layout(s.root, s.timer, s.amplitude)
}

// SetSwayAmplitude changes the sway amplitude, in radians, from the next
// layout on.
func (s *Session) SetSwayAmplitude(a float64) {
	s.amplitude = a
}

// SwayAmplitude returns the amplitude in use.
func (s *Session) SwayAmplitude() float64 { return s.amplitude }

// DropLeaves removes the leaves currently shown and returns how many fell.
func (s *Session) DropLeaves() int {
	n := s.scene.DropLeaves()
	s.logger.Debug("dropped leaves", "plant_id", s.id, "count", n)
	return n
}

// Stats summarizes the current plant.
func (s *Session) Stats() telemetry.GenerationStats {
	stats := telemetry.Collect(s.root)
	stats.PlantID = s.id.String()
	stats.SpeciesSeed = s.speciesSeed
	stats.PlantSeed = s.plantSeed
	stats.Generation = s.generation
	return stats
}

// ID identifies the current plant; it changes on Regenerate and NewSpecies.
func (s *Session) ID() uuid.UUID { return s.id }

// Root returns the current plant.
func (s *Session) Root() *plant.Node { return s.root }

// Scene returns the visual mirror of the current plant.
func (s *Session) Scene() *systems.Scene { return s.scene }

// Gene returns the species gene the root grows with.
func (s *Session) Gene() *genetics.Gene { return s.gene }

// SpeciesSeed returns the seed the species gene was derived from.
func (s *Session) SpeciesSeed() int64 { return s.speciesSeed }

// PlantSeed returns the seed of the current plant's stream.
func (s *Session) PlantSeed() int64 { return s.plantSeed }

// Generation returns the number of growth cycles applied.
func (s *Session) Generation() int { return s.generation }

// Timer returns the shared sway timer.
func (s *Session) Timer() float64 { return s.timer }
