package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sprout/components"
	"github.com/pthm-cable/sprout/plant"
)

// LeafSize is the edge length of a leaf quad in world units.
const LeafSize = 0.6

// LeafTint is the colour every leaf is drawn with.
var LeafTint = components.Tint{R: 60, G: 150, B: 45}

// visual records the entities built for one growth node.
type visual struct {
	branch ecs.Entity
	twig   ecs.Entity
	leaf   ecs.Entity

	hasTwig bool
	hasLeaf bool
}

// Scene mirrors a plant's growth tree as ECS entities: one branch per node,
// plus an optional twig and leaf. It implements plant.Builder so the growth
// engine reports each node as it is created.
type Scene struct {
	world *ecs.World

	branchMapper *ecs.Map4[
		components.Segment,
		components.Pose,
		components.Sway,
		components.Tint,
	]
	twigMapper *ecs.Map3[
		components.Twig,
		components.Pose,
		components.Tint,
	]
	leafMapper *ecs.Map3[
		components.Leaf,
		components.Pose,
		components.Tint,
	]

	branchFilter *ecs.Filter4[
		components.Segment,
		components.Pose,
		components.Sway,
		components.Tint,
	]
	twigFilter *ecs.Filter3[
		components.Twig,
		components.Pose,
		components.Tint,
	]
	leafFilter *ecs.Filter3[
		components.Leaf,
		components.Pose,
		components.Tint,
	]

	poseMap *ecs.Map1[components.Pose]
	swayMap *ecs.Map1[components.Sway]
	twigMap *ecs.Map1[components.Twig]
	leafMap *ecs.Map1[components.Leaf]

	nodes map[*plant.Node]*visual
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world: world,
		branchMapper: ecs.NewMap4[
			components.Segment,
			components.Pose,
			components.Sway,
			components.Tint,
		](world),
		twigMapper: ecs.NewMap3[
			components.Twig,
			components.Pose,
			components.Tint,
		](world),
		leafMapper: ecs.NewMap3[
			components.Leaf,
			components.Pose,
			components.Tint,
		](world),
		branchFilter: ecs.NewFilter4[
			components.Segment,
			components.Pose,
			components.Sway,
			components.Tint,
		](world),
		twigFilter: ecs.NewFilter3[
			components.Twig,
			components.Pose,
			components.Tint,
		](world),
		leafFilter: ecs.NewFilter3[
			components.Leaf,
			components.Pose,
			components.Tint,
		](world),
		poseMap: ecs.NewMap1[components.Pose](world),
		swayMap: ecs.NewMap1[components.Sway](world),
		twigMap: ecs.NewMap1[components.Twig](world),
		leafMap: ecs.NewMap1[components.Leaf](world),
		nodes:   make(map[*plant.Node]*visual),
	}
}

// BuildBranch creates the entities for a freshly grown node. Poses stay
// zero until the next Layout.
func (s *Scene) BuildBranch(n *plant.Node) {
	if _, ok := s.nodes[n]; ok {
		return
	}

	v := &visual{}
	seg := components.Segment{
		Depth:      int32(n.Depth()),
		Length:     float32(n.Length()),
		BaseRadius: float32(n.ParentRadius()),
		TipRadius:  float32(n.Radius()),
		Offset:     float32(n.Offset()),
	}
	tint := tintOf(n.Color())
	v.branch = s.branchMapper.NewEntity(&seg, &components.Pose{}, &components.Sway{}, &tint)

	if tw, ok := n.Twig(); ok {
		twig := components.Twig{
			Length:     float32(tw.Length),
			BaseRadius: float32(tw.BaseRadius),
			TipRadius:  float32(tw.TipRadius),
			Yaw:        float32(tw.Yaw),
		}
		twigTint := tintOf(tw.Color)
		v.twig = s.twigMapper.NewEntity(&twig, &components.Pose{}, &twigTint)
		v.hasTwig = true

		leaf := components.Leaf{
			Slot:  int32(tw.Leaf.Slot),
			Pitch: float32(tw.Leaf.Pitch),
			Size:  LeafSize,
		}
		leafTint := LeafTint
		v.leaf = s.leafMapper.NewEntity(&leaf, &components.Pose{}, &leafTint)
		v.hasLeaf = true
	}

	s.nodes[n] = v
}

// Layout poses every entity for the given sway timer. Each branch rotates
// away from its parent's axis by amplitude*sin(timer)+offset; nodes at even
// depth bend around Z, odd depths around X.
func (s *Scene) Layout(root *plant.Node, timer, amplitude float64) {
	if root == nil {
		return
	}
	up := r3.Vec{Y: 1}
	dirs := make(map[*plant.Node]r3.Vec, len(s.nodes))
	bases := make(map[*plant.Node]r3.Vec, len(s.nodes))
	bases[root] = r3.Vec{}
	dirs[root] = up

	root.Animate(timer, amplitude, func(n *plant.Node, angle float64) {
		v, ok := s.nodes[n]
		if !ok {
			return
		}

		parentDir := dirs[n]
		dir := r3.Unit(r3.NewRotation(angle, swayAxis(n.Depth())).Rotate(parentDir))
		base := bases[n]
		tip := r3.Add(base, r3.Scale(n.Length(), dir))

		pose := s.poseMap.Get(v.branch)
		*pose = components.Pose{Base: base, Tip: tip, Dir: dir}
		s.swayMap.Get(v.branch).Angle = angle

		for i := 0; i < n.NumChildren(); i++ {
			c := n.Child(i)
			dirs[c] = dir
			bases[c] = tip
		}

		if v.hasTwig {
			s.layoutTwig(v, *pose, n.Length())
		}
	})
}

// layoutTwig hangs the twig from the middle of its host and places the leaf
// along it.
func (s *Scene) layoutTwig(v *visual, host components.Pose, hostLength float64) {
	twig := s.twigMap.Get(v.twig)
	base := r3.Add(host.Base, r3.Scale(hostLength/2, host.Dir))
	side := perpendicular(host.Dir)
	dir := r3.NewRotation(math.Pi/4, side).Rotate(host.Dir)
	dir = r3.Unit(r3.NewRotation(float64(twig.Yaw), host.Dir).Rotate(dir))
	tip := r3.Add(base, r3.Scale(float64(twig.Length), dir))
	*s.poseMap.Get(v.twig) = components.Pose{Base: base, Tip: tip, Dir: dir}

	if !v.hasLeaf {
		return
	}
	leaf := s.leafMap.Get(v.leaf)
	along := float64(leaf.Slot+1) / float64(leaf.Slot+2)
	leafBase := r3.Add(base, r3.Scale(along*float64(twig.Length), dir))
	leafDir := r3.Unit(r3.NewRotation(float64(leaf.Pitch), perpendicular(dir)).Rotate(dir))
	leafTip := r3.Add(leafBase, r3.Scale(float64(leaf.Size), leafDir))
	*s.poseMap.Get(v.leaf) = components.Pose{Base: leafBase, Tip: leafTip, Dir: leafDir}
}

// DropLeaves removes every leaf entity and returns how many were removed.
// Twigs stay; growth after the drop brings new leaves.
func (s *Scene) DropLeaves() int {
	var leaves []ecs.Entity
	query := s.leafFilter.Query()
	for query.Next() {
		leaves = append(leaves, query.Entity())
	}

	for _, e := range leaves {
		s.world.RemoveEntity(e)
	}
	for _, v := range s.nodes {
		v.hasLeaf = false
	}
	return len(leaves)
}

// Clear removes all entities, ready for a new plant.
func (s *Scene) Clear() {
	for n, v := range s.nodes {
		s.world.RemoveEntity(v.branch)
		if v.hasTwig {
			s.world.RemoveEntity(v.twig)
		}
		if v.hasLeaf {
			s.world.RemoveEntity(v.leaf)
		}
		delete(s.nodes, n)
	}
}

// Counts returns the number of live branch, twig and leaf entities.
func (s *Scene) Counts() (branches, twigs, leaves int) {
	bq := s.branchFilter.Query()
	for bq.Next() {
		branches++
	}
	tq := s.twigFilter.Query()
	for tq.Next() {
		twigs++
	}
	lq := s.leafFilter.Query()
	for lq.Next() {
		leaves++
	}
	return
}

// Pose returns the current pose of the branch built for n.
func (s *Scene) Pose(n *plant.Node) (components.Pose, bool) {
	v, ok := s.nodes[n]
	if !ok {
		return components.Pose{}, false
	}
	return *s.poseMap.Get(v.branch), true
}

// Sway returns the angle last applied to the branch built for n.
func (s *Scene) Sway(n *plant.Node) (float64, bool) {
	v, ok := s.nodes[n]
	if !ok {
		return 0, false
	}
	return s.swayMap.Get(v.branch).Angle, true
}

// TwigPose returns the pose of n's twig, if it has one.
func (s *Scene) TwigPose(n *plant.Node) (components.Pose, bool) {
	v, ok := s.nodes[n]
	if !ok || !v.hasTwig {
		return components.Pose{}, false
	}
	return *s.poseMap.Get(v.twig), true
}

// EachBranch calls fn for every branch entity.
func (s *Scene) EachBranch(fn func(seg *components.Segment, pose *components.Pose, tint *components.Tint)) {
	query := s.branchFilter.Query()
	for query.Next() {
		seg, pose, _, tint := query.Get()
		fn(seg, pose, tint)
	}
}

// EachTwig calls fn for every twig entity.
func (s *Scene) EachTwig(fn func(twig *components.Twig, pose *components.Pose, tint *components.Tint)) {
	query := s.twigFilter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// EachLeaf calls fn for every leaf entity.
func (s *Scene) EachLeaf(fn func(leaf *components.Leaf, pose *components.Pose, tint *components.Tint)) {
	query := s.leafFilter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// swayAxis alternates the bend axis by depth so a plant spreads in 3D.
func swayAxis(depth int) r3.Vec {
	if depth%2 == 0 {
		return r3.Vec{Z: 1}
	}
	return r3.Vec{X: 1}
}

// perpendicular returns a unit vector at right angles to dir.
func perpendicular(dir r3.Vec) r3.Vec {
	p := r3.Cross(dir, r3.Vec{Y: 1})
	if r3.Norm(p) < 1e-9 {
		p = r3.Cross(dir, r3.Vec{X: 1})
	}
	return r3.Unit(p)
}

// tintOf converts a [0,1] colour to 8-bit channels.
func tintOf(c plant.Color) components.Tint {
	return components.Tint{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
