// Package plant implements the procedural growth engine: a tree of growth
// nodes that extends itself one generation at a time from a shared sample
// stream and gene.
package plant

import (
	"slices"

	"github.com/pthm-cable/sprout/genetics"
	"github.com/pthm-cable/sprout/random"
)

// Color is an RGB colour with channels in [0,1].
type Color struct {
	R, G, B float64
}

// Leaf is the decorative leaf attached to a side twig.
type Leaf struct {
	Slot  int     // placement slot along the twig
	Pitch float64 // tilt away from the twig, radians
}

// Twig is a small side shoot hanging off a branch segment.
type Twig struct {
	BaseRadius float64
	TipRadius  float64
	Length     float64
	Yaw        float64 // rotation around the host branch, radians
	Color      Color
	Leaf       Leaf
}

// Builder materializes visuals for a node when it is created.
// The root is built by the factory, every other node right after its
// parent adds it.
type Builder interface {
	BuildBranch(n *Node)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(n *Node)

// BuildBranch calls f(n).
func (f BuilderFunc) BuildBranch(n *Node) { f(n) }

// env is shared by every node of one plant.
type env struct {
	builder  Builder
	lineage  *genetics.Lineage
	settings Settings
}

// Node is one branch segment of a plant. Geometry is read-only from the
// outside; only Grow changes the tree.
type Node struct {
	depth        int
	parentRadius float64
	radius       float64
	length       float64
	offset       float64
	age          int
	color        Color
	twig         *Twig
	children     []*Node

	gene   *genetics.Gene
	stream *random.Stream
	env    *env
}

// newNode samples the node's own length and colour from stream.
func newNode(gene *genetics.Gene, depth int, stream *random.Stream, e *env, parentRadius, radius, offset float64) *Node {
	n := &Node{
		depth:        depth,
		parentRadius: parentRadius,
		radius:       radius,
		offset:       offset,
		gene:         gene,
		stream:       stream,
		env:          e,
	}
	n.length = gene.Length().Sample(stream.Next())
	n.color = sampleColor(gene.Color(), stream)
	return n
}

func sampleColor(c genetics.ColorRanges, s *random.Stream) Color {
	return Color{
		R: c.R.Sample(s.Next()),
		G: c.G.Sample(s.Next()),
		B: c.B.Sample(s.Next()),
	}
}

// Depth is 0 for the root and parent depth + 1 for every child.
func (n *Node) Depth() int { return n.depth }

// ParentRadius is the radius at the segment's base.
func (n *Node) ParentRadius() float64 { return n.parentRadius }

// Radius is the radius at the segment's tip; always below ParentRadius.
func (n *Node) Radius() float64 { return n.radius }

// Length is the segment length.
func (n *Node) Length() float64 { return n.length }

// Offset is the divergence from the parent's axis in radians.
func (n *Node) Offset() float64 { return n.offset }

// Age counts the growth cycles applied to this node.
func (n *Node) Age() int { return n.age }

// Color is the branch colour.
func (n *Node) Color() Color { return n.color }

// Twig returns the node's side twig, if it has one.
func (n *Node) Twig() (Twig, bool) {
	if n.twig == nil {
		return Twig{}, false
	}
	return *n.twig, true
}

// Gene returns the gene this node grows with.
func (n *Node) Gene() *genetics.Gene { return n.gene }

// Stream returns the sample stream shared by the whole plant.
func (n *Node) Stream() *random.Stream { return n.stream }

// Children returns the node's children in insertion order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// Terminated reports whether the node is a leaf too thin to grow again.
func (n *Node) Terminated() bool {
	return n.IsLeaf() && n.radius < n.gene.MinRadius()
}
