package plant

import (
	"github.com/pthm-cable/sprout/genetics"
	"github.com/pthm-cable/sprout/random"
)

// Grow advances the plant below n by one generation. Inner nodes pass the
// call to their children in order; leaves either continue with one child,
// fork into two, or stay as they are once thinner than the gene's minimum.
//
// Growth order decides which node draws which sample, so the traversal is
// strictly depth-first and sequential.
func (n *Node) Grow() {
	n.age++

	if len(n.children) > 0 {
		for _, c := range n.children {
			c.Grow()
		}
		return
	}

	offset := n.gene.Pitch().Sample(n.stream.Next())
	if n.radius < n.gene.MinRadius() {
		return
	}

	if n.stream.Next() > n.gene.ForkProbability() {
		n.addChild(offset / 2)
	} else {
		n.addChild(-offset)
		n.addChild(offset)
	}
}

// addChild creates a child segment at the given offset and attaches it.
func (n *Node) addChild(offset float64) {
	gene := n.gene
	if n.env.lineage != nil {
		gene = n.env.lineage.Gene(genetics.NextType(n.gene.Type(), n.stream.Next()))
	}

	radius := n.radius * n.gene.RadiusReduction().Sample(n.stream.Next())
	child := newNode(gene, n.depth+1, n.stream, n.env, n.radius, radius, offset)
	child.twig = n.env.settings.sideTwig(child, n.stream)

	n.children = append(n.children, child)
	if n.env.builder != nil {
		n.env.builder.BuildBranch(child)
	}
}

// sideTwig decides whether a new branch gets a side twig and samples it.
func (s Settings) sideTwig(host *Node, stream *random.Stream) *Twig {
	if stream.Next() >= s.TwigChance {
		return nil
	}

	base := host.parentRadius / 4
	tip := s.TwigTipRadius
	if tip > base {
		tip = base
	}

	tw := &Twig{
		BaseRadius: base,
		TipRadius:  tip,
		Length:     host.length * s.TwigLengthRatio,
		Yaw:        random.InRange(stream.Next(), s.TwigYaw),
	}
	tw.Color = sampleColor(host.gene.Color(), stream)

	slots := s.LeafSlots
	if slots < 1 {
		slots = 1
	}
	tw.Leaf = Leaf{
		Slot:  min(int(stream.Next()*float64(slots)), slots-1),
		Pitch: random.InRange(stream.Next(), s.LeafPitch),
	}
	return tw
}
