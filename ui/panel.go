package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a request from the control panel.
type Action uint8

const (
	ActionNone Action = iota
	ActionGrow
	ActionNewPlant
	ActionNewSpecies
	ActionRebuild
	ActionDropLeaves
)

var actionNames = []string{"none", "grow", "new-plant", "new-species", "rebuild", "drop-leaves"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Panel is the button column on the right edge of the screen.
type Panel struct {
	X, Y          float32
	Width         float32
	ButtonHeight  float32
	Spacing       float32
	SwayAmplitude float32 // edited in place by the slider
	MaxSway       float32
}

// NewPanel creates a panel anchored to the right of a screen screenW wide.
func NewPanel(screenW, swayAmplitude, maxSway float32) *Panel {
	const width = 150
	return &Panel{
		X:             screenW - width - 10,
		Y:             10,
		Width:         width,
		ButtonHeight:  30,
		Spacing:       8,
		SwayAmplitude: swayAmplitude,
		MaxSway:       maxSway,
	}
}

// Draw renders the panel and returns the action clicked this frame, if any.
func (p *Panel) Draw() Action {
	buttons := []struct {
		label  string
		action Action
	}{
		{"Grow", ActionGrow},
		{"New Plant", ActionNewPlant},
		{"New Species", ActionNewSpecies},
		{"Rebuild", ActionRebuild},
		{"Drop Leaves", ActionDropLeaves},
	}

	clicked := ActionNone
	y := p.Y
	for _, b := range buttons {
		if gui.Button(rl.Rectangle{X: p.X, Y: y, Width: p.Width, Height: p.ButtonHeight}, b.label) {
			clicked = b.action
		}
		y += p.ButtonHeight + p.Spacing
	}

	y += p.Spacing
	rl.DrawText(fmt.Sprintf("Sway %.3f", p.SwayAmplitude), int32(p.X), int32(y), 14, rl.DarkGray)
	y += 18
	p.SwayAmplitude = gui.SliderBar(
		rl.Rectangle{X: p.X, Y: y, Width: p.Width, Height: 16},
		"", "",
		p.SwayAmplitude, 0, p.MaxSway,
	)
	return clicked
}

// Contains reports whether a screen point is over the panel, so camera
// dragging can ignore clicks meant for the buttons.
func (p *Panel) Contains(pt rl.Vector2) bool {
	height := 5*(p.ButtonHeight+p.Spacing) + p.Spacing + 18 + 16
	return rl.CheckCollisionPointRec(pt, rl.Rectangle{X: p.X, Y: p.Y, Width: p.Width, Height: height})
}
