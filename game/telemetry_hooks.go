package game

import "github.com/pthm-cable/sprout/telemetry"

// recordGeneration logs and writes the current plant's stats.
func (g *Game) recordGeneration() {
	stats := g.session.Stats()

	if g.logStats {
		g.logger.Info("generation", "stats", stats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteGeneration(stats); err != nil {
			g.logger.Error("failed to write generation", "error", err)
		}
		if err := g.outputManager.WritePerf(g.perfCollector.Stats(), stats.Generation); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}
}

// LastStats returns the stats of the current plant.
func (g *Game) LastStats() telemetry.GenerationStats {
	return g.session.Stats()
}
