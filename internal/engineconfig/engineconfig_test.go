package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"physics-engine/internal/physics"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "physics.yaml")
	want := Default()
	want.Broadphase = "quadtree"
	want.Gravity = Vec{X: 10, Y: 500}
	want.CCD.Enabled = false
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.yaml")
	data := "broadphase: naive\ngravity:\n  x: 0\n  y: 100\nccd:\n  enabled: true\n  iterations: 30\n  tolerance: 0.001\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Broadphase != "naive" || cfg.Gravity.Y != 100 || cfg.CCD.Iterations != 30 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Width != 1080 || cfg.CellSize != 100 || cfg.MaxVelocity != 2000 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "width: [1, 2"},
		{"unknown broadphase", "broadphase: octree\n"},
		{"zero cell", "cell_size: 0\n"},
		{"restitution above one", "restitution: 1.5\n"},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "physics.yaml")
		if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if cfg != Default() {
			t.Errorf("%s: cfg not reset to defaults", tt.name)
		}
	}
}

func TestWorldConfig(t *testing.T) {
	cfg := Default()
	cfg.Broadphase = "quadtree"
	w := cfg.World()
	if w.Broadphase != physics.BroadphaseQuadTree {
		t.Errorf("Broadphase = %v", w.Broadphase)
	}
	if w.Gravity.Y != 981 || w.Damping != 0.1 || !w.CCD || w.Sweep.Iterations != 20 {
		t.Errorf("World() = %+v", w)
	}
}
