// Package genetics defines the growth parameters (genes) that shape a plant
// and the grammar that derives gene variants for different growth habits.
package genetics

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/sprout/random"
)

// ErrInvalidGene is returned when gene parameters would make growth
// non-terminating or physically meaningless.
var ErrInvalidGene = errors.New("invalid gene")

// Range is an inclusive [min, max] interval.
type Range [2]float64

// Min returns the lower bound.
func (r Range) Min() float64 { return r[0] }

// Max returns the upper bound.
func (r Range) Max() float64 { return r[1] }

// Sample maps a [0,1) draw into the range.
func (r Range) Sample(p float64) float64 {
	return random.InRange(p, r)
}

func (r Range) valid() bool {
	return !math.IsNaN(r[0]) && !math.IsNaN(r[1]) && r[0] <= r[1]
}

// ColorRanges holds one range per RGB channel, each within [0,1].
type ColorRanges struct {
	R Range `yaml:"r"`
	G Range `yaml:"g"`
	B Range `yaml:"b"`
}

// Params is the concrete parameter set of a gene.
type Params struct {
	Type            PlantType
	Length          Range       // segment length
	Pitch           Range       // child divergence from the parent axis, radians
	RadiusReduction Range       // fraction of the parent radius kept by a child
	Color           ColorRanges // branch colour
	MinRadius       float64     // leaves thinner than this stop growing
	ForkProbability float64     // draws at or below this fork into two children
}

// Validate checks every range and threshold.
func (p Params) Validate() error {
	check := func(name string, r Range) error {
		if !r.valid() {
			return fmt.Errorf("%w: %s range [%g, %g] has min > max", ErrInvalidGene, name, r[0], r[1])
		}
		return nil
	}
	for _, c := range []struct {
		name string
		r    Range
	}{
		{"length", p.Length},
		{"pitch", p.Pitch},
		{"radius reduction", p.RadiusReduction},
		{"color r", p.Color.R},
		{"color g", p.Color.G},
		{"color b", p.Color.B},
	} {
		if err := check(c.name, c.r); err != nil {
			return err
		}
	}

	if p.Length[0] <= 0 {
		return fmt.Errorf("%w: length must be positive, got %g", ErrInvalidGene, p.Length[0])
	}
	if p.RadiusReduction[0] <= 0 || p.RadiusReduction[1] >= 1 {
		return fmt.Errorf("%w: radius reduction [%g, %g] must lie strictly inside (0, 1)",
			ErrInvalidGene, p.RadiusReduction[0], p.RadiusReduction[1])
	}
	for _, ch := range []Range{p.Color.R, p.Color.G, p.Color.B} {
		if ch[0] < 0 || ch[1] > 1 {
			return fmt.Errorf("%w: color channel [%g, %g] outside [0, 1]", ErrInvalidGene, ch[0], ch[1])
		}
	}
	if !(p.MinRadius > 0) {
		return fmt.Errorf("%w: min radius must be positive, got %g", ErrInvalidGene, p.MinRadius)
	}
	if !(p.ForkProbability >= 0 && p.ForkProbability <= 1) {
		return fmt.Errorf("%w: fork probability %g outside [0, 1]", ErrInvalidGene, p.ForkProbability)
	}
	return nil
}

// Gene is an immutable bundle of growth parameters shared by a plant's nodes.
type Gene struct {
	seed int64
	p    Params
}

// New builds a gene from explicit parameters.
func New(p Params) (*Gene, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Gene{p: p}, nil
}

// NewGene samples a gene for plant type t from seed. The seed drives a
// private stream used only here, so two seeds give genes with different
// length, pitch, colour and fork parameters.
//
// Draw order: length floor, length spread, pitch spread, then low and high
// jitter for R, G and B, then the fork draw.
func NewGene(seed int64, t PlantType, meta Meta) (*Gene, error) {
	if !t.Known() {
		t = Root
	}
	s := random.NewStream(seed)

	scale := meta.lengthScale(t)
	lengthMin := meta.BaseRadius[0] * meta.LengthFloorScale.Sample(s.Next())
	lengthMax := lengthMin + meta.LengthSpread.Sample(s.Next())

	pitchMax := meta.PitchFloor + meta.PitchSpread.Sample(s.Next())

	jitter := Range{0, meta.ColorJitter}
	shrink := func(r Range) Range {
		lo := r[0] + jitter.Sample(s.Next())
		hi := r[1] - jitter.Sample(s.Next())
		return Range{lo, hi}
	}
	color := ColorRanges{
		R: shrink(meta.Color.R),
		G: shrink(meta.Color.G),
		B: shrink(meta.Color.B),
	}

	forkDraw := s.Next()
	var fork float64
	switch t {
	case Grass:
		fork = 0
	case ShrubTrunk:
		fork = meta.ShrubFork.Sample(forkDraw)
	default:
		fork = Range{meta.ForkFloor, 1}.Sample(forkDraw)
	}

	g, err := New(Params{
		Type:            t,
		Length:          Range{lengthMin * scale, lengthMax * scale},
		Pitch:           Range{meta.PitchFloor, pitchMax},
		RadiusReduction: meta.RadiusReduction,
		Color:           color,
		MinRadius:       meta.MinRadius,
		ForkProbability: fork,
	})
	if err != nil {
		return nil, fmt.Errorf("gene seed %d type %s: %w", seed, t, err)
	}
	g.seed = seed
	return g, nil
}

// Seed returns the seed the gene was sampled from (0 for explicit params).
func (g *Gene) Seed() int64 { return g.seed }

// Type returns the plant type the gene was derived for.
func (g *Gene) Type() PlantType { return g.p.Type }

// Length returns the segment length range.
func (g *Gene) Length() Range { return g.p.Length }

// Pitch returns the child divergence angle range in radians.
func (g *Gene) Pitch() Range { return g.p.Pitch }

// RadiusReduction returns the fraction range applied to a parent's radius.
func (g *Gene) RadiusReduction() Range { return g.p.RadiusReduction }

// Color returns the per-channel colour ranges.
func (g *Gene) Color() ColorRanges { return g.p.Color }

// MinRadius returns the growth termination threshold.
func (g *Gene) MinRadius() float64 { return g.p.MinRadius }

// ForkProbability returns the probability that a growing leaf forks.
func (g *Gene) ForkProbability() float64 { return g.p.ForkProbability }

// Params returns a copy of the gene's parameters.
func (g *Gene) Params() Params { return g.p }

// NextType draws the next grammar symbol from s.
func (g *Gene) NextType(parent PlantType, s *random.Stream) PlantType {
	return NextType(parent, s.Next())
}
