package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sprout/components"
	"github.com/pthm-cable/sprout/telemetry"
	"github.com/pthm-cable/sprout/ui"
)

// Camera input sensitivity
const (
	orbitSpeed = 0.005 // radians per pixel dragged
	zoomStep   = 0.9   // distance factor per wheel notch
)

// Update handles input and advances the sway animation by one frame.
func (g *Game) Update() {
	g.perfCollector.StartFrame()
	g.handleInput()

	g.perfCollector.StartPhase(telemetry.PhaseLayout)
	g.session.SetSwayAmplitude(float64(g.panel.SwayAmplitude))
	g.session.Update(float64(rl.GetFrameTime()))
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	keys := []struct {
		key    int32
		action ui.Action
	}{
		{rl.KeyG, ui.ActionGrow},
		{rl.KeyN, ui.ActionNewPlant},
		{rl.KeyS, ui.ActionNewSpecies},
		{rl.KeyR, ui.ActionRebuild},
		{rl.KeyL, ui.ActionDropLeaves},
	}
	for _, k := range keys {
		if rl.IsKeyPressed(k.key) {
			g.apply(k.action)
		}
	}

	if rl.IsKeyPressed(rl.KeyF) {
		g.framePlant()
	}

	g.handleCameraInput()
}

// handleResize propagates window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.backgroundRenderer.Resize(w, h)
	g.panel.X = float32(w) - g.panel.Width - 10
}

// handleCameraInput orbits on left drag and zooms on the wheel.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !g.panel.Contains(mouse) {
		delta := rl.GetMouseDelta()
		g.camera.Rotate(-float64(delta.X)*orbitSpeed, -float64(delta.Y)*orbitSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := zoomStep
		if wheel < 0 {
			factor = 1 / zoomStep
		}
		g.camera.ZoomBy(factor)
	}
}

// framePlant points the camera at the plant's bounding box.
func (g *Game) framePlant() {
	first := true
	var lo, hi r3.Vec
	g.session.Scene().EachBranch(func(_ *components.Segment, pose *components.Pose, _ *components.Tint) {
		for _, p := range []r3.Vec{pose.Base, pose.Tip} {
			if first {
				lo, hi = p, p
				first = false
				continue
			}
			lo = r3.Vec{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
			hi = r3.Vec{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
		}
	})
	if first {
		return
	}
	g.camera.Frame(lo, hi, g.cfg.Camera.Fovy)
}
