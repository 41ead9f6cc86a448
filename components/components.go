// Package components defines ECS components for the plant's visual mirror.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Segment is the static shape of one branch, copied from its growth node
// when the branch is built.
type Segment struct {
	Depth      int32
	Length     float32
	BaseRadius float32 // radius at the parent joint
	TipRadius  float32
	Offset     float32 // divergence from the parent axis, radians
}

// Pose is a laid-out segment in world space. Dir is a unit vector from Base
// towards Tip.
type Pose struct {
	Base r3.Vec
	Tip  r3.Vec
	Dir  r3.Vec
}

// Sway holds the rotation the animator applied this frame.
type Sway struct {
	Angle float64
}

// Tint is a display colour.
type Tint struct {
	R, G, B uint8
}

// Twig is a side shoot attached to a host branch.
type Twig struct {
	Length     float32
	BaseRadius float32
	TipRadius  float32
	Yaw        float32 // around the host axis
}

// Leaf hangs off a twig.
type Leaf struct {
	Slot  int32
	Pitch float32
	Size  float32
}
