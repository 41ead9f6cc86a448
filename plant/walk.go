package plant

import "math"

// Walk visits n and its descendants depth-first in child order. Returning
// false from fn skips the visited node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Leaves returns the subtree's leaves in traversal order.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(m *Node) bool {
		if m.IsLeaf() {
			leaves = append(leaves, m)
		}
		return true
	})
	return leaves
}

// MaxDepth returns the greatest depth found below n.
func (n *Node) MaxDepth() int {
	deepest := n.depth
	n.Walk(func(m *Node) bool {
		if m.depth > deepest {
			deepest = m.depth
		}
		return true
	})
	return deepest
}

// SwayAngle is the rotation applied to a node's visual at time timer:
// amplitude*sin(timer) + offset.
func SwayAngle(amplitude, timer, offset float64) float64 {
	return amplitude*math.Sin(timer) + offset
}

// Animate computes the sway angle of every node for one frame. All nodes
// share the same timer value; apply sees a node before its children.
func (n *Node) Animate(timer, amplitude float64, apply func(n *Node, angle float64)) {
	n.Walk(func(m *Node) bool {
		apply(m, SwayAngle(amplitude, timer, m.offset))
		return true
	})
}
