package engineconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"physics-engine/internal/physics"
	"physics-engine/internal/vec2"
)

// ConfigPath is the path to the engine config file, relative to the process working directory.
const ConfigPath = "config/physics.yaml"

// Vec is a YAML-friendly 2D vector.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec2 converts v to the physics vector type.
func (v Vec) Vec2() vec2.Vec {
	return vec2.New(v.X, v.Y)
}

// CCD holds the swept-collision settings.
type CCD struct {
	Enabled    bool    `yaml:"enabled"`
	Iterations int     `yaml:"iterations"`
	Tolerance  float64 `yaml:"tolerance"`
}

// Config holds everything the simulation reads at start-up: window, world tuning and material defaults.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`

	Gravity       Vec     `yaml:"gravity"`
	AirResistance float64 `yaml:"air_resistance"`
	Restitution   float64 `yaml:"restitution"`
	Friction      float64 `yaml:"friction"`
	MaxVelocity   float64 `yaml:"max_velocity"`

	Broadphase string  `yaml:"broadphase"`
	CellSize   float64 `yaml:"cell_size"`
	MaxObjects int     `yaml:"max_objects"`
	MaxLevels  int     `yaml:"max_levels"`

	CCD CCD `yaml:"ccd"`

	CorrectionFactor  float64 `yaml:"correction_factor"`
	VelocityThreshold float64 `yaml:"velocity_threshold"`
}

// Default returns a 1080x1920 portrait scene at 60 fps with pixel-scale gravity.
func Default() Config {
	return Config{
		Width:             1080,
		Height:            1920,
		FPS:               60,
		Gravity:           Vec{X: 0, Y: 981},
		AirResistance:     0.1,
		Restitution:       0.8,
		Friction:          0.3,
		MaxVelocity:       2000,
		Broadphase:        string(physics.BroadphaseGrid),
		CellSize:          100,
		MaxObjects:        10,
		MaxLevels:         5,
		CCD:               CCD{Enabled: true, Iterations: 20, Tolerance: 1e-6},
		CorrectionFactor:  0.8,
		VelocityThreshold: 0.01,
	}
}

// Validate reports the first setting the world cannot run with.
func (c Config) Validate() error {
	if _, err := physics.ParseBroadphase(c.Broadphase); err != nil {
		return err
	}
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	case c.FPS <= 0:
		return fmt.Errorf("fps %d must be positive", c.FPS)
	case c.CellSize <= 0:
		return fmt.Errorf("cell_size %v must be positive", c.CellSize)
	case c.MaxVelocity <= 0:
		return fmt.Errorf("max_velocity %v must be positive", c.MaxVelocity)
	case c.Restitution < 0 || c.Restitution > 1:
		return fmt.Errorf("restitution %v must be in [0, 1]", c.Restitution)
	case c.Friction < 0:
		return fmt.Errorf("friction %v must not be negative", c.Friction)
	case c.CorrectionFactor <= 0 || c.CorrectionFactor > 1:
		return fmt.Errorf("correction_factor %v must be in (0, 1]", c.CorrectionFactor)
	}
	return nil
}

// World converts the config into the physics world's settings.
func (c Config) World() physics.Config {
	bp, err := physics.ParseBroadphase(c.Broadphase)
	if err != nil {
		bp = physics.BroadphaseGrid
	}
	return physics.Config{
		Gravity:           c.Gravity.Vec2(),
		Damping:           c.AirResistance,
		MaxVelocity:       c.MaxVelocity,
		Broadphase:        bp,
		CellSize:          c.CellSize,
		MaxObjects:        c.MaxObjects,
		MaxLevels:         c.MaxLevels,
		CCD:               c.CCD.Enabled,
		Sweep:             physics.Sweep{Iterations: c.CCD.Iterations, Tolerance: c.CCD.Tolerance},
		CorrectionFactor:  c.CorrectionFactor,
		VelocityThreshold: c.VelocityThreshold,
	}
}

// Load reads the config at path. A missing file yields Default() and no error; keys absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
