package main

import (
	"fmt"
	"os"

	"physics-engine/internal/commands"
	"physics-engine/internal/engineconfig"
	"physics-engine/internal/env"
	"physics-engine/internal/logger"
	"physics-engine/internal/scene"
)

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}
	log := logger.New(env.LogPath(logger.DefaultPath))

	reg := commands.NewRegistry()
	registerRun(reg, log)
	registerHeadless(reg, log)
	registerBench(reg, log)

	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"run"}
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		reg.Usage(os.Stderr)
		return
	}
	if err := reg.Execute(args); err != nil {
		log.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the YAML config at path (PHYSICS_CONFIG or the default when empty) and applies
// PHYSICS_* overrides on top.
func loadConfig(path string) (engineconfig.Config, error) {
	if path == "" {
		path = env.ConfigPath()
	}
	cfg, err := engineconfig.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := env.Apply(&cfg); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildScene loads the layout file when one is given and otherwise builds the named preset.
func buildScene(cfg engineconfig.Config, presetName, layoutPath string, seed int64, log *logger.Logger) (*scene.Scene, error) {
	if layoutPath != "" {
		l, err := scene.LoadLayout(layoutPath)
		if err != nil {
			return nil, err
		}
		return scene.NewFromLayout(cfg, l, log)
	}
	preset, err := scene.ParsePreset(presetName)
	if err != nil {
		return nil, err
	}
	return scene.New(cfg, preset, seed, log)
}
