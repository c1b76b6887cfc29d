package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCollectorWindowBoundaries(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0) // 60-tick windows

	if c.WindowClosed(59) {
		t.Error("window closed one tick early")
	}
	if !c.WindowClosed(60) {
		t.Error("window not closed at boundary")
	}

	c.Close(60, PopulationSample{})
	if c.WindowClosed(119) {
		t.Error("second window closed early")
	}
	if !c.WindowClosed(120) {
		t.Error("second window not closed at boundary")
	}
}

func TestCollectorCountersResetBetweenWindows(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)

	c.RecordKill()
	c.RecordKill()
	c.RecordRespawn()
	c.RecordFlee()

	ws := c.Close(60, PopulationSample{Herbivores: 10, Predators: 4, Alive: 14, Total: 16})
	if ws.Kills != 2 || ws.Respawns != 1 || ws.FleeEvents != 1 {
		t.Errorf("events = %d/%d/%d, want 2/1/1", ws.Kills, ws.Respawns, ws.FleeEvents)
	}
	if ws.Herbivores != 10 || ws.Predators != 4 || ws.Alive != 14 || ws.Total != 16 {
		t.Errorf("census not carried through: %+v", ws)
	}

	ws2 := c.Close(120, PopulationSample{})
	if ws2.Kills != 0 || ws2.Respawns != 0 || ws2.FleeEvents != 0 {
		t.Errorf("counters did not reset: %+v", ws2)
	}
}

func TestCollectorSpeedStatistics(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)

	ws := c.Close(60, PopulationSample{Speeds: []float64{0.1, 0.2, 0.3}})
	if math.Abs(ws.SpeedMean-0.2) > 1e-9 {
		t.Errorf("speed mean = %f, want 0.2", ws.SpeedMean)
	}
	if math.Abs(ws.SpeedStd-0.1) > 1e-9 {
		t.Errorf("speed std = %f, want 0.1", ws.SpeedStd)
	}

	// Degenerate samples must not produce NaN.
	single := c.Close(120, PopulationSample{Speeds: []float64{0.5}})
	if single.SpeedMean != 0.5 || single.SpeedStd != 0 {
		t.Errorf("single sample stats = %f/%f, want 0.5/0", single.SpeedMean, single.SpeedStd)
	}
	empty := c.Close(180, PopulationSample{})
	if empty.SpeedMean != 0 || empty.SpeedStd != 0 {
		t.Errorf("empty sample stats = %f/%f, want 0/0", empty.SpeedMean, empty.SpeedStd)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WriteStats(WindowStats{WindowEndTick: 60, Kills: 1}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteStats(WindowStats{WindowEndTick: 120, Kills: 2}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("stats.csv has %d lines, want header plus 2 rows", len(lines))
	}
	if !strings.Contains(lines[0], "window_end") || !strings.Contains(lines[0], "kills") {
		t.Errorf("header row = %q", lines[0])
	}
	if strings.Contains(lines[1], "window_end") || strings.Contains(lines[2], "window_end") {
		t.Error("header repeated in data rows")
	}
}
