package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Bounds.MaxX <= cfg.Bounds.MinX {
		t.Error("default bounds degenerate")
	}
	if cfg.Terrain.LavaThreshold >= 0 {
		t.Errorf("default lava threshold = %f, want negative", cfg.Terrain.LavaThreshold)
	}
	if len(cfg.Population) == 0 {
		t.Error("default population table empty")
	}
	if cfg.Derived.DT32 <= 0 || cfg.Derived.FrameTime32 <= 0 {
		t.Errorf("derived values not computed: %+v", cfg.Derived)
	}
}

func TestLoadUserOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := []byte("lifecycle:\n  respawn_delay: 3.5\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Lifecycle.RespawnDelay != 3.5 {
		t.Errorf("respawn_delay = %f, want override 3.5", cfg.Lifecycle.RespawnDelay)
	}
	// Untouched defaults survive the merge.
	if cfg.Animation.FrameRate != 12.0 {
		t.Errorf("frame_rate = %f, want default 12", cfg.Animation.FrameRate)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"degenerate bounds", "bounds:\n  min_x: 1.0\n  max_x: -1.0\n"},
		{"zero dt", "physics:\n  dt: 0\n"},
		{"zero frame rate", "animation:\n  frame_rate: 0\n"},
		{"negative population", "population:\n  - species: t_rex\n    count: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/no/such/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
