package plant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sprout/genetics"
	"github.com/pthm-cable/sprout/random"
)

func testGene(t *testing.T, mutate func(p *genetics.Params)) *genetics.Gene {
	t.Helper()
	p := genetics.Params{
		Length:          genetics.Range{2, 4},
		Pitch:           genetics.Range{math.Pi / 16, math.Pi / 4},
		RadiusReduction: genetics.Range{0.6, 0.7},
		Color: genetics.ColorRanges{
			R: genetics.Range{0, 0.4},
			G: genetics.Range{0.6, 1},
			B: genetics.Range{0, 0.4},
		},
		MinRadius:       0.2,
		ForkProbability: 0.6,
	}
	if mutate != nil {
		mutate(&p)
	}
	g, err := genetics.New(p)
	require.NoError(t, err)
	return g
}

func grown(t *testing.T, gene *genetics.Gene, seed int64, generations int) *Node {
	t.Helper()
	root, err := CreatePlant(gene, 2, random.NewStream(seed))
	require.NoError(t, err)
	for i := 0; i < generations; i++ {
		root.Grow()
	}
	return root
}

// assertSameTree compares two trees node by node in traversal order.
func assertSameTree(t *testing.T, a, b *Node) {
	t.Helper()
	require.Equal(t, a.NumChildren(), b.NumChildren(), "depth %d", a.Depth())
	assert.Equal(t, a.Depth(), b.Depth())
	assert.Equal(t, a.Radius(), b.Radius())
	assert.Equal(t, a.ParentRadius(), b.ParentRadius())
	assert.Equal(t, a.Length(), b.Length())
	assert.Equal(t, a.Offset(), b.Offset())
	assert.Equal(t, a.Age(), b.Age())
	assert.Equal(t, a.Color(), b.Color())
	at, aok := a.Twig()
	bt, bok := b.Twig()
	assert.Equal(t, aok, bok)
	assert.Equal(t, at, bt)
	for i := 0; i < a.NumChildren(); i++ {
		assertSameTree(t, a.Child(i), b.Child(i))
	}
}

func TestGrowDeterministic(t *testing.T) {
	meta := genetics.DefaultMeta()
	for _, seed := range []int64{1, 2, 17, 1234} {
		g1, err := genetics.NewGene(seed, genetics.Root, meta)
		require.NoError(t, err)
		g2, err := genetics.NewGene(seed, genetics.Root, meta)
		require.NoError(t, err)

		a := grown(t, g1, seed, 6)
		b := grown(t, g2, seed, 6)
		assertSameTree(t, a, b)
	}
}

func TestRebuildAfterReset(t *testing.T) {
	gene := testGene(t, nil)
	stream := random.NewStream(5)

	first, err := CreatePlant(gene, 2, stream)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		first.Grow()
	}
	draws := stream.Draws()

	stream.Reset()
	second, err := CreatePlant(gene, 2, stream)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		second.Grow()
	}

	assert.Equal(t, draws, stream.Draws())
	assertSameTree(t, first, second)
}

func TestGrowSharesStreamAndGene(t *testing.T) {
	gene := testGene(t, nil)
	root := grown(t, gene, 3, 4)
	root.Walk(func(n *Node) bool {
		assert.Same(t, root.Stream(), n.Stream())
		assert.Same(t, gene, n.Gene())
		return true
	})
}

func TestMonotonicThinningAndDepth(t *testing.T) {
	meta := genetics.DefaultMeta()
	for seed := int64(0); seed < 20; seed++ {
		gene, err := genetics.NewGene(seed, genetics.Root, meta)
		require.NoError(t, err)
		root := grown(t, gene, seed, 7)

		assert.Equal(t, 0, root.Depth())
		root.Walk(func(n *Node) bool {
			assert.Less(t, n.Radius(), n.ParentRadius())
			assert.Greater(t, n.Radius(), 0.0)
			assert.Greater(t, n.Length(), 0.0)
			for _, c := range n.Children() {
				assert.Equal(t, n.Radius(), c.ParentRadius())
				assert.Equal(t, n.Depth()+1, c.Depth())
			}
			return true
		})
	}
}

func TestTerminationIsSticky(t *testing.T) {
	gene := testGene(t, func(p *genetics.Params) {
		p.MinRadius = 0.5
		p.ForkProbability = 1
	})
	root := grown(t, gene, 9, 4)

	var stopped []*Node
	root.Walk(func(n *Node) bool {
		if n.IsLeaf() && n.Radius() < gene.MinRadius() {
			stopped = append(stopped, n)
		}
		return true
	})
	require.NotEmpty(t, stopped)

	for i := 0; i < 5; i++ {
		root.Grow()
	}
	for _, n := range stopped {
		assert.True(t, n.IsLeaf())
		assert.True(t, n.Terminated())
	}

	root.Walk(func(n *Node) bool {
		if n.Radius() < gene.MinRadius() {
			assert.True(t, n.IsLeaf(), "node below min radius at depth %d has children", n.Depth())
		}
		return true
	})
}

func TestTerminatedTreeStopsGrowing(t *testing.T) {
	gene := testGene(t, nil)
	root := grown(t, gene, 4, 30)
	count := root.Count()

	root.Grow()
	assert.Equal(t, count, root.Count())
	for _, leaf := range root.Leaves() {
		assert.True(t, leaf.Terminated())
	}
}

func TestBranchingArity(t *testing.T) {
	gene := testGene(t, func(p *genetics.Params) { p.ForkProbability = 0.5 })
	root, err := CreatePlant(gene, 2, random.NewStream(21))
	require.NoError(t, err)

	sawOne, sawTwo := false, false
	for gen := 0; gen < 8; gen++ {
		var active []*Node
		for _, leaf := range root.Leaves() {
			if leaf.Radius() >= gene.MinRadius() {
				active = append(active, leaf)
			}
		}

		root.Grow()

		for _, n := range active {
			switch n.NumChildren() {
			case 1:
				sawOne = true
				assert.Equal(t, n.Child(0).Offset(), math.Abs(n.Child(0).Offset()))
			case 2:
				sawTwo = true
				assert.Equal(t, -n.Child(0).Offset(), n.Child(1).Offset())
			default:
				t.Fatalf("leaf gained %d children", n.NumChildren())
			}
		}
	}
	assert.True(t, sawOne, "expected at least one continuation")
	assert.True(t, sawTwo, "expected at least one fork")
}

func TestChildOffsetWithinPitch(t *testing.T) {
	gene := testGene(t, nil)
	root := grown(t, gene, 12, 5)
	pitch := gene.Pitch()

	root.Walk(func(n *Node) bool {
		switch n.NumChildren() {
		case 1:
			off := n.Child(0).Offset()
			assert.GreaterOrEqual(t, off, pitch.Min()/2)
			assert.LessOrEqual(t, off, pitch.Max()/2)
		case 2:
			off := n.Child(1).Offset()
			assert.GreaterOrEqual(t, off, pitch.Min())
			assert.LessOrEqual(t, off, pitch.Max())
		}
		return true
	})
}

func TestScenarioRootRadius(t *testing.T) {
	gene := testGene(t, func(p *genetics.Params) { p.MinRadius = 0.2 })
	root, err := CreatePlant(gene, 2, random.NewStream(1))
	require.NoError(t, err)

	assert.Equal(t, 0, root.Depth())
	assert.Equal(t, 0, root.Age())
	assert.Equal(t, 0.0, root.Offset())
	assert.Equal(t, 2.0, root.ParentRadius())
	assert.GreaterOrEqual(t, root.Radius(), 1.5)
	assert.LessOrEqual(t, root.Radius(), 1.7)
	assert.True(t, root.IsLeaf())

	root.Grow()
	require.Contains(t, []int{1, 2}, root.NumChildren())
	assert.Equal(t, 1, root.Age())
	for _, c := range root.Children() {
		assert.Less(t, c.Radius(), root.Radius())
	}
}

// A draw above the fork probability continues with one child; otherwise the
// leaf forks. Probability 0 therefore always continues and probability 1
// always forks.
func TestForkProbabilityBoundaries(t *testing.T) {
	t.Run("zero continues", func(t *testing.T) {
		gene := testGene(t, func(p *genetics.Params) { p.ForkProbability = 0 })
		for seed := int64(0); seed < 10; seed++ {
			root, err := CreatePlant(gene, 2, random.NewStream(seed))
			require.NoError(t, err)
			for gen := 0; gen < 4; gen++ {
				before := root.Leaves()
				root.Grow()
				for _, leaf := range before {
					if leaf.Radius() >= gene.MinRadius() {
						assert.Equal(t, 1, leaf.NumChildren())
					}
				}
			}
		}
	})

	t.Run("one forks", func(t *testing.T) {
		gene := testGene(t, func(p *genetics.Params) { p.ForkProbability = 1 })
		for seed := int64(0); seed < 10; seed++ {
			root, err := CreatePlant(gene, 2, random.NewStream(seed))
			require.NoError(t, err)
			for gen := 0; gen < 4; gen++ {
				before := root.Leaves()
				root.Grow()
				for _, leaf := range before {
					if leaf.Radius() >= gene.MinRadius() {
						assert.Equal(t, 2, leaf.NumChildren())
					}
				}
			}
		}
	})
}

func TestGrowthExtremes(t *testing.T) {
	slow := func(fork float64) func(p *genetics.Params) {
		return func(p *genetics.Params) {
			p.RadiusReduction = genetics.Range{0.98, 0.99}
			p.MinRadius = 0.01
			p.ForkProbability = fork
		}
	}

	const generations = 8

	t.Run("all fork", func(t *testing.T) {
		root := grown(t, testGene(t, slow(1)), 31, generations)
		assert.Len(t, root.Leaves(), 1<<generations)
		assert.Equal(t, 1<<(generations+1)-1, root.Count())
		assert.Equal(t, generations, root.MaxDepth())
	})

	t.Run("all continue", func(t *testing.T) {
		root := grown(t, testGene(t, slow(0)), 31, generations)
		assert.Len(t, root.Leaves(), 1)
		assert.Equal(t, generations+1, root.Count())
		assert.Equal(t, generations, root.MaxDepth())
	})
}

func TestAgeCountsCycles(t *testing.T) {
	gene := testGene(t, nil)
	root := grown(t, gene, 6, 4)
	assert.Equal(t, 4, root.Age())
	root.Walk(func(n *Node) bool {
		assert.Equal(t, 4-n.Depth(), n.Age(), "depth %d", n.Depth())
		return true
	})
}
