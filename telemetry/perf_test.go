package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseGrow)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseLayout)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration")
	}
	if stats.PhaseAvg[PhaseGrow] <= 0 {
		t.Error("expected grow phase to be tracked")
	}
	if stats.PhaseAvg[PhaseLayout] <= 0 {
		t.Error("expected layout phase to be tracked")
	}
	if stats.PhaseAvg[PhaseRender] != 0 {
		t.Error("render phase never ran")
	}
	if stats.MinFrame > stats.AvgFrame || stats.AvgFrame > stats.MaxFrame {
		t.Errorf("min/avg/max out of order: %v %v %v", stats.MinFrame, stats.AvgFrame, stats.MaxFrame)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseGrow)
		pc.EndFrame()
	}

	if pc.sampleCount != 5 {
		t.Errorf("sample count = %d, want window size 5", pc.sampleCount)
	}
	if stats := pc.Stats(); stats.AvgFrame <= 0 || stats.FramesPerSecond <= 0 {
		t.Errorf("expected positive timing after window filled, got %+v", stats)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseTelemetry)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseGrow)
		time.Sleep(2 * time.Millisecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseGrow] <= stats.PhasePct[PhaseTelemetry] {
		t.Errorf("expected grow (%v%%) > telemetry (%v%%)",
			stats.PhasePct[PhaseGrow], stats.PhasePct[PhaseTelemetry])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(0)
	stats := pc.Stats()
	if stats.AvgFrame != 0 || stats.FramesPerSecond != 0 {
		t.Errorf("expected zero stats for empty collector, got %+v", stats)
	}
	if len(pc.samples) != 60 {
		t.Errorf("window = %d, want default 60", len(pc.samples))
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseLayout.String() != "layout" {
		t.Errorf("PhaseLayout = %q", PhaseLayout.String())
	}
	if Phase(200).String() != "unknown" {
		t.Errorf("out of range phase = %q", Phase(200).String())
	}
}
