package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer draws a vertical sky gradient behind the 3D scene.
type BackgroundRenderer struct {
	screenW, screenH int32
	top, bottom      rl.Color
}

// NewBackgroundRenderer creates a background with the default sky colours.
func NewBackgroundRenderer(screenW, screenH int32) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: screenW,
		screenH: screenH,
		top:     rl.Color{R: 120, G: 170, B: 220, A: 255},
		bottom:  rl.Color{R: 225, G: 235, B: 240, A: 255},
	}
}

// Resize updates the area the gradient covers.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw fills the screen. Call it before BeginMode3D.
func (b *BackgroundRenderer) Draw() {
	rl.DrawRectangleGradientV(0, 0, b.screenW, b.screenH, b.top, b.bottom)
}
