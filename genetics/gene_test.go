package genetics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sprout/random"
)

func validParams() Params {
	return Params{
		Length:          Range{2, 4},
		Pitch:           Range{0.2, 0.6},
		RadiusReduction: Range{0.6, 0.7},
		Color: ColorRanges{
			R: Range{0, 0.4},
			G: Range{0.6, 1},
			B: Range{0, 0.4},
		},
		MinRadius:       0.2,
		ForkProbability: 0.5,
	}
}

func TestNewGeneDeterministic(t *testing.T) {
	a, err := NewGene(11, Root, DefaultMeta())
	require.NoError(t, err)
	b, err := NewGene(11, Root, DefaultMeta())
	require.NoError(t, err)

	assert.Equal(t, a.Params(), b.Params())
	assert.Equal(t, int64(11), a.Seed())
}

func TestNewGeneSeedsDiffer(t *testing.T) {
	a, err := NewGene(1, Root, DefaultMeta())
	require.NoError(t, err)
	b, err := NewGene(2, Root, DefaultMeta())
	require.NoError(t, err)

	assert.NotEqual(t, a.Length(), b.Length())
	assert.NotEqual(t, a.Pitch(), b.Pitch())
	assert.NotEqual(t, a.Color(), b.Color())
}

func TestNewGeneRanges(t *testing.T) {
	meta := DefaultMeta()
	for seed := int64(0); seed < 200; seed++ {
		g, err := NewGene(seed, Root, meta)
		require.NoError(t, err)

		l := g.Length()
		assert.GreaterOrEqual(t, l.Min(), meta.BaseRadius[0]*meta.LengthFloorScale[0])
		assert.LessOrEqual(t, l.Min(), meta.BaseRadius[0]*meta.LengthFloorScale[1])
		assert.LessOrEqual(t, l.Min(), l.Max())
		assert.LessOrEqual(t, l.Max()-l.Min(), meta.LengthSpread[1])

		p := g.Pitch()
		assert.InDelta(t, math.Pi/16, p.Min(), 1e-12)
		assert.LessOrEqual(t, p.Max(), math.Pi/16+math.Pi/4)

		c := g.Color()
		for _, ch := range []Range{c.R, c.G, c.B} {
			assert.LessOrEqual(t, ch.Min(), ch.Max())
		}
		assert.GreaterOrEqual(t, c.G.Min(), 0.6)
		assert.LessOrEqual(t, c.G.Max(), 1.0)

		assert.GreaterOrEqual(t, g.ForkProbability(), 0.2)
		assert.LessOrEqual(t, g.ForkProbability(), 1.0)
		assert.Equal(t, 0.2, g.MinRadius())
	}
}

func TestNewGeneForkByType(t *testing.T) {
	meta := DefaultMeta()
	for seed := int64(0); seed < 50; seed++ {
		grass, err := NewGene(seed, Grass, meta)
		require.NoError(t, err)
		assert.Equal(t, 0.0, grass.ForkProbability())

		shrub, err := NewGene(seed, ShrubTrunk, meta)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, shrub.ForkProbability(), meta.ShrubFork[0])
		assert.LessOrEqual(t, shrub.ForkProbability(), meta.ShrubFork[1])

		for _, typ := range []PlantType{Root, TallTrunk, LongBranch, ShortBranch} {
			g, err := NewGene(seed, typ, meta)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, g.ForkProbability(), meta.ForkFloor, "type %s", typ)
		}
	}
}

func TestNewGeneTypeScalesLength(t *testing.T) {
	meta := DefaultMeta()
	root, err := NewGene(5, Root, meta)
	require.NoError(t, err)
	grass, err := NewGene(5, Grass, meta)
	require.NoError(t, err)
	tall, err := NewGene(5, TallTrunk, meta)
	require.NoError(t, err)

	assert.InDelta(t, root.Length().Min()*0.5, grass.Length().Min(), 1e-9)
	assert.InDelta(t, root.Length().Max()*1.3, tall.Length().Max(), 1e-9)
	assert.Equal(t, Grass, grass.Type())
}

func TestNewGeneUnknownTypeFallsBackToRoot(t *testing.T) {
	g, err := NewGene(3, PlantType(200), DefaultMeta())
	require.NoError(t, err)
	assert.Equal(t, Root, g.Type())
}

// Rejection of degenerate configurations is a hardening addition: the
// growth engine would otherwise never terminate or produce zero-width
// branches.
func TestParamsValidateRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"inverted length", func(p *Params) { p.Length = Range{4, 2} }},
		{"zero length", func(p *Params) { p.Length = Range{0, 2} }},
		{"inverted pitch", func(p *Params) { p.Pitch = Range{1, 0} }},
		{"reduction reaches one", func(p *Params) { p.RadiusReduction = Range{0.9, 1.0} }},
		{"reduction grows", func(p *Params) { p.RadiusReduction = Range{1.1, 1.2} }},
		{"reduction zero", func(p *Params) { p.RadiusReduction = Range{0, 0.5} }},
		{"min radius zero", func(p *Params) { p.MinRadius = 0 }},
		{"min radius negative", func(p *Params) { p.MinRadius = -1 }},
		{"min radius NaN", func(p *Params) { p.MinRadius = math.NaN() }},
		{"fork above one", func(p *Params) { p.ForkProbability = 1.5 }},
		{"fork negative", func(p *Params) { p.ForkProbability = -0.1 }},
		{"color outside unit", func(p *Params) { p.Color.G = Range{0.6, 1.2} }},
		{"inverted color", func(p *Params) { p.Color.R = Range{0.4, 0.1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			g, err := New(p)
			assert.Nil(t, g)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGene))
		})
	}
}

func TestNewAcceptsBoundaryProbabilities(t *testing.T) {
	for _, fork := range []float64{0, 1} {
		p := validParams()
		p.ForkProbability = fork
		g, err := New(p)
		require.NoError(t, err)
		assert.Equal(t, fork, g.ForkProbability())
	}
}

func TestNewGeneRejectsBadMeta(t *testing.T) {
	meta := DefaultMeta()
	meta.MinRadius = 0
	_, err := NewGene(1, Root, meta)
	assert.ErrorIs(t, err, ErrInvalidGene)
}

func TestGeneNextTypeConsumesOneDraw(t *testing.T) {
	g, err := New(validParams())
	require.NoError(t, err)

	s := random.NewStream(8)
	next := g.NextType(TallTrunk, s)
	assert.Equal(t, 1, s.Draws())

	s.Reset()
	assert.Equal(t, NextType(TallTrunk, s.Next()), next)
}

func TestLineage(t *testing.T) {
	l, err := NewLineage(9, DefaultMeta())
	require.NoError(t, err)
	assert.Equal(t, int64(9), l.Seed())

	for _, typ := range AllTypes {
		g := l.Gene(typ)
		require.NotNil(t, g)
		assert.Equal(t, typ, g.Type())
	}
	assert.Same(t, l.Gene(Root), l.Gene(PlantType(77)))
	assert.Same(t, l.Gene(Grass), l.Gene(Grass))
}
