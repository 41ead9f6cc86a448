package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sprout/telemetry"
	"github.com/pthm-cable/sprout/ui"
)

const controlsText = "[G] grow  [N] new plant  [S] new species  [R] rebuild  [L] drop leaves  [F] frame  drag: orbit  wheel: zoom"

// Draw renders one frame and closes the frame's perf sample.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	g.backgroundRenderer.Draw()
	g.plantRenderer.Draw(g.session.Scene(), g.camera)

	_, _, leaves := g.session.Scene().Counts()
	g.hud.Draw(ui.HUDData{
		Stats:    g.session.Stats(),
		Perf:     g.perfCollector.Stats(),
		Leaves:   leaves,
		Message:  g.message,
		Controls: controlsText,
	}, g.screenHeight)

	action := g.panel.Draw()
	rl.EndDrawing()

	g.apply(action)
	g.perfCollector.EndFrame()
}
