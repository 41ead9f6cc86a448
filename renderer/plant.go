// Package renderer draws the plant scene with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sprout/camera"
	"github.com/pthm-cable/sprout/components"
	"github.com/pthm-cable/sprout/systems"
)

// Cylinder tessellation by segment depth; deep segments are thin.
const (
	trunkSides  = 12
	branchSides = 6
	twigSides   = 4
)

// PlantRenderer draws branches as tapered cylinders with sphere joints,
// twigs as thin cylinders and leaves as double-sided quads.
type PlantRenderer struct {
	GroundSize  float32
	GroundColor rl.Color
	Fovy        float32

	// ShowJoints draws a sphere at every branch base to hide seams.
	ShowJoints bool
}

// NewPlantRenderer creates a renderer with a ground plane of the given size.
func NewPlantRenderer(groundSize, fovy float32) *PlantRenderer {
	return &PlantRenderer{
		GroundSize:  groundSize,
		GroundColor: rl.Color{R: 110, G: 90, B: 60, A: 255},
		Fovy:        fovy,
		ShowJoints:  true,
	}
}

// Camera3D converts an orbit camera to raylib's camera.
func (r *PlantRenderer) Camera3D(cam *camera.Orbit) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(cam.Position()),
		Target:     vec3(cam.Target),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       r.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the scene from the orbit camera.
func (r *PlantRenderer) Draw(scene *systems.Scene, cam *camera.Orbit) {
	rl.BeginMode3D(r.Camera3D(cam))
	defer rl.EndMode3D()

	rl.DrawPlane(rl.Vector3{}, rl.Vector2{X: r.GroundSize, Y: r.GroundSize}, r.GroundColor)

	scene.EachBranch(func(seg *components.Segment, pose *components.Pose, tint *components.Tint) {
		col := color(*tint)
		sides := int32(branchSides)
		if seg.Depth < 2 {
			sides = trunkSides
		}
		rl.DrawCylinderEx(vec3(pose.Base), vec3(pose.Tip), seg.BaseRadius, seg.TipRadius, sides, col)
		if r.ShowJoints {
			rl.DrawSphereEx(vec3(pose.Tip), seg.TipRadius, 6, 6, col)
		}
	})

	scene.EachTwig(func(twig *components.Twig, pose *components.Pose, tint *components.Tint) {
		rl.DrawCylinderEx(vec3(pose.Base), vec3(pose.Tip), twig.BaseRadius, twig.TipRadius, twigSides, color(*tint))
	})

	scene.EachLeaf(func(leaf *components.Leaf, pose *components.Pose, tint *components.Tint) {
		drawLeaf(pose, leaf.Size/2, color(*tint))
	})
}

// drawLeaf draws a diamond from Base to Tip, visible from both sides.
func drawLeaf(pose *components.Pose, halfWidth float32, col rl.Color) {
	side := r3.Cross(pose.Dir, r3.Vec{Y: 1})
	if r3.Norm(side) < 1e-6 {
		side = r3.Vec{X: 1}
	}
	side = r3.Scale(float64(halfWidth), r3.Unit(side))
	mid := r3.Scale(0.5, r3.Add(pose.Base, pose.Tip))

	base, tip := vec3(pose.Base), vec3(pose.Tip)
	left, right := vec3(r3.Sub(mid, side)), vec3(r3.Add(mid, side))

	rl.DrawTriangle3D(base, right, tip, col)
	rl.DrawTriangle3D(base, tip, left, col)
	rl.DrawTriangle3D(base, tip, right, col)
	rl.DrawTriangle3D(base, left, tip, col)
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func color(t components.Tint) rl.Color {
	return rl.Color{R: t.R, G: t.G, B: t.B, A: 255}
}
