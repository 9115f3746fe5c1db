package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"physics-engine/internal/engineconfig"
)

func TestParse(t *testing.T) {
	data := "# comment\n\nPHYSICS_TEST_A=one\nPHYSICS_TEST_B = \"two words\"\nexport PHYSICS_TEST_C='3'\nnot a pair\n=nokey\nPHYSICS_TEST_D=a=b\n"
	got, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := map[string]string{
		"PHYSICS_TEST_A": "one",
		"PHYSICS_TEST_B": "two words",
		"PHYSICS_TEST_C": "3",
		"PHYSICS_TEST_D": "a=b",
	}
	if len(got) != len(want) {
		t.Errorf("got %d vars, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestLoadKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PHYSICS_TEST_NEW=file\nPHYSICS_TEST_SET=file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PHYSICS_TEST_SET", "shell")
	t.Cleanup(func() { os.Unsetenv("PHYSICS_TEST_NEW") })

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("PHYSICS_TEST_NEW"); got != "file" {
		t.Errorf("PHYSICS_TEST_NEW = %q, want file", got)
	}
	if got := os.Getenv("PHYSICS_TEST_SET"); got != "shell" {
		t.Errorf("PHYSICS_TEST_SET = %q, want shell", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Errorf("Load missing = %v, want nil", err)
	}
}

func TestApply(t *testing.T) {
	t.Setenv(VarBroadphase, "quadtree")
	t.Setenv(VarCellSize, "64")
	t.Setenv(VarGravityY, "-9.8")
	t.Setenv(VarMaxVelocity, "")

	cfg := engineconfig.Default()
	if err := Apply(&cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Broadphase != "quadtree" || cfg.CellSize != 64 || cfg.Gravity.Y != -9.8 || cfg.MaxVelocity != 2000 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestApplyRejectsBadValues(t *testing.T) {
	tests := []struct{ key, value string }{
		{VarBroadphase, "octree"},
		{VarCellSize, "wide"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := engineconfig.Default()
			if err := Apply(&cfg); err == nil {
				t.Errorf("%s=%s: expected error", tt.key, tt.value)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	t.Setenv(VarConfig, "")
	if got := ConfigPath(); got != engineconfig.ConfigPath {
		t.Errorf("ConfigPath = %q", got)
	}
	t.Setenv(VarLogPath, "/tmp/x.txt")
	if got := LogPath("logs/physics.txt"); got != "/tmp/x.txt" {
		t.Errorf("LogPath = %q", got)
	}
}
