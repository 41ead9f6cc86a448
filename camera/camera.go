// Package camera provides an orbit camera for viewing a plant from any side.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// maxPolar keeps the eye above the ground plane.
const maxPolar = math.Pi / 2

// Orbit circles a target point. The eye sits Distance away at Yaw around the
// vertical axis and Polar radians down from straight above.
type Orbit struct {
	Target   r3.Vec
	Yaw      float64
	Polar    float64
	Distance float64

	// Constraints
	MinDistance, MaxDistance float64
	MinPolar                 float64
}

// New creates an orbit camera looking at target from the side.
func New(target r3.Vec, distance, minDistance, maxDistance, minPolar float64) *Orbit {
	o := &Orbit{
		Target:      target,
		Yaw:         0,
		Polar:       maxPolar * 0.8,
		Distance:    distance,
		MinDistance: minDistance,
		MaxDistance: maxDistance,
		MinPolar:    minPolar,
	}
	o.clamp()
	return o
}

// Position returns the eye position in world space.
func (o *Orbit) Position() r3.Vec {
	sinP, cosP := math.Sincos(o.Polar)
	sinY, cosY := math.Sincos(o.Yaw)
	offset := r3.Vec{
		X: o.Distance * sinP * sinY,
		Y: o.Distance * cosP,
		Z: o.Distance * sinP * cosY,
	}
	return r3.Add(o.Target, offset)
}

// Forward returns the unit view direction.
func (o *Orbit) Forward() r3.Vec {
	return r3.Unit(r3.Sub(o.Target, o.Position()))
}

// Rotate turns the camera by the given angles in radians. Polar is clamped
// so the camera never looks from further overhead than MinPolar or from
// below the ground.
func (o *Orbit) Rotate(dYaw, dPolar float64) {
	o.Yaw = math.Mod(o.Yaw+dYaw, 2*math.Pi)
	o.Polar += dPolar
	o.clamp()
}

// ZoomBy multiplies the distance by factor, within the distance limits.
func (o *Orbit) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	o.Distance *= factor
	o.clamp()
}

// Frame recentres the camera on a box and backs off far enough to fit it.
func (o *Orbit) Frame(min, max r3.Vec, fovy float64) {
	o.Target = r3.Scale(0.5, r3.Add(min, max))
	radius := r3.Norm(r3.Sub(max, min)) / 2
	half := fovy * math.Pi / 360
	if half > 0 && radius > 0 {
		o.Distance = radius / math.Sin(half)
	}
	o.clamp()
}

func (o *Orbit) clamp() {
	o.Polar = clamp(o.Polar, o.MinPolar, maxPolar)
	if o.MaxDistance > 0 {
		o.Distance = clamp(o.Distance, o.MinDistance, o.MaxDistance)
	}
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
