package plant

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/sprout/genetics"
	"github.com/pthm-cable/sprout/random"
)

// RootTaper is the fixed range the root segment narrows by. Unlike every
// other range it does not come from the gene.
var RootTaper = genetics.Range{0.3, 0.5}

// ErrBaseRadius is returned when the root taper would leave a non-positive radius.
var ErrBaseRadius = errors.New("base radius too small for root taper")

// Settings controls decorative side growth.
type Settings struct {
	TwigChance      float64        `yaml:"twig_chance"`       // draws below this add a side twig
	TwigTipRadius   float64        `yaml:"twig_tip_radius"`   // capped at the twig's base radius
	TwigLengthRatio float64        `yaml:"twig_length_ratio"` // twig length relative to its host
	TwigYaw         genetics.Range `yaml:"twig_yaw"`
	LeafPitch       genetics.Range `yaml:"leaf_pitch"`
	LeafSlots       int            `yaml:"leaf_slots"`
}

// DefaultSettings returns the side growth settings the viewer ships with.
func DefaultSettings() Settings {
	return Settings{
		TwigChance:      0.5,
		TwigTipRadius:   0.08,
		TwigLengthRatio: 1 / 1.5,
		TwigYaw:         genetics.Range{0, math.Pi / 2},
		LeafPitch:       genetics.Range{0, 0.2},
		LeafSlots:       3,
	}
}

// Factory creates root nodes. Builder and Lineage are optional; a non-nil
// Lineage switches on the plant type grammar for every new branch.
type Factory struct {
	Builder  Builder
	Lineage  *genetics.Lineage
	Settings Settings
}

// NewFactory returns a factory with default settings and no hooks.
func NewFactory() *Factory {
	return &Factory{Settings: DefaultSettings()}
}

// CreatePlant samples the root segment of a new plant. The root narrows from
// baseRadius by a draw from RootTaper. It is not grown; call Grow on the
// result once per generation.
func (f *Factory) CreatePlant(gene *genetics.Gene, baseRadius float64, stream *random.Stream) (*Node, error) {
	if gene == nil {
		return nil, fmt.Errorf("create plant: nil gene")
	}
	if stream == nil {
		return nil, fmt.Errorf("create plant: nil stream")
	}
	if !(baseRadius > RootTaper.Max()) {
		return nil, fmt.Errorf("%w: %g <= %g", ErrBaseRadius, baseRadius, RootTaper.Max())
	}

	e := &env{
		builder:  f.Builder,
		lineage:  f.Lineage,
		settings: f.Settings,
	}

	top := baseRadius - RootTaper.Sample(stream.Next())
	root := newNode(gene, 0, stream, e, baseRadius, top, 0)
	if e.builder != nil {
		e.builder.BuildBranch(root)
	}
	return root, nil
}

// CreatePlant creates a root node with default settings and no hooks.
func CreatePlant(gene *genetics.Gene, baseRadius float64, stream *random.Stream) (*Node, error) {
	return NewFactory().CreatePlant(gene, baseRadius, stream)
}
