// Package ui draws the viewer's overlay: a stats HUD and the control panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sprout/telemetry"
)

// HUDData holds everything the HUD shows for one frame.
type HUDData struct {
	Stats    telemetry.GenerationStats
	Perf     telemetry.PerfStats
	Leaves   int
	Message  string // last status or error, empty for none
	Controls string
}

// HUD renders the stats readout in the top-left corner.
type HUD struct {
	FontSize int32
}

// NewHUD creates a HUD with the default font size.
func NewHUD() *HUD {
	return &HUD{FontSize: 16}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData, screenHeight int32) {
	s := data.Stats
	y := int32(10)
	line := func(text string, col rl.Color) {
		rl.DrawText(text, 10, y, h.FontSize, col)
		y += h.FontSize + 4
	}

	line(fmt.Sprintf("Species %d  Plant %d  Generation %d", s.SpeciesSeed, s.PlantSeed, s.Generation), rl.Black)
	line(fmt.Sprintf("Nodes: %d | Tips: %d (%d done) | Depth: %d", s.Nodes, s.Tips, s.Terminated, s.MaxDepth), rl.DarkGray)
	line(fmt.Sprintf("Twigs: %d | Leaves: %d | Draws: %d", s.Twigs, data.Leaves, s.Draws), rl.DarkGray)
	line(fmt.Sprintf("FPS: %.0f | Grow: %.1f%%", data.Perf.FramesPerSecond, data.Perf.PhasePct[telemetry.PhaseGrow]), rl.DarkGray)
	if s.Done() {
		line("Fully grown", rl.DarkGreen)
	}
	if data.Message != "" {
		line(data.Message, rl.Maroon)
	}

	if data.Controls != "" {
		rl.DrawText(data.Controls, 10, screenHeight-25, 14, rl.Gray)
	}
}
