package env

import (
	"fmt"
	"os"
	"strconv"

	"physics-engine/internal/engineconfig"
	"physics-engine/internal/physics"
)

// Environment variables read by the simulator.
const (
	VarConfig      = "PHYSICS_CONFIG"
	VarBroadphase  = "PHYSICS_BROADPHASE"
	VarCellSize    = "PHYSICS_CELL_SIZE"
	VarGravityY    = "PHYSICS_GRAVITY_Y"
	VarMaxVelocity = "PHYSICS_MAX_VELOCITY"
	VarLogPath     = "PHYSICS_LOG"
)

// ConfigPath returns PHYSICS_CONFIG, or engineconfig.ConfigPath when unset.
func ConfigPath() string {
	return stringOr(VarConfig, engineconfig.ConfigPath)
}

// LogPath returns PHYSICS_LOG, or fallback when unset.
func LogPath(fallback string) string {
	return stringOr(VarLogPath, fallback)
}

func stringOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Apply overwrites cfg fields from PHYSICS_* variables that are set. It stops at the first value that
// does not parse and leaves the remaining fields untouched.
func Apply(cfg *engineconfig.Config) error {
	if v := os.Getenv(VarBroadphase); v != "" {
		if _, err := physics.ParseBroadphase(v); err != nil {
			return fmt.Errorf("%s: %w", VarBroadphase, err)
		}
		cfg.Broadphase = v
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{VarCellSize, &cfg.CellSize},
		{VarGravityY, &cfg.Gravity.Y},
		{VarMaxVelocity, &cfg.MaxVelocity},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = n
	}
	return nil
}
