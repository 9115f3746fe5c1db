package main

import (
	"flag"
	"fmt"
	"sort"
	"time"

	"physics-engine/internal/commands"
	"physics-engine/internal/events"
	"physics-engine/internal/logger"
	"physics-engine/internal/physics"
	"physics-engine/internal/scene"
)

func registerHeadless(reg *commands.Registry, log *logger.Logger) {
	fs := flag.NewFlagSet("headless", flag.ExitOnError)
	configPath := fs.String("config", "", "config file (default $PHYSICS_CONFIG or config/physics.yaml)")
	presetName := fs.String("preset", string(scene.Rings), "scene preset")
	layoutPath := fs.String("layout", "", "YAML layout file, used instead of -preset")
	seed := fs.Int64("seed", 1, "random seed")
	steps := fs.Int("steps", 600, "number of steps")
	dt := fs.Float64("dt", 0, "step length in seconds (default 1/fps)")
	broadphase := fs.String("broadphase", "", "override the configured broad phase")
	out := fs.String("out", "", "write collision events as JSON to this file")

	reg.Register("headless", "run a scene without a window and report collisions", fs, func() error {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		if *broadphase != "" {
			if _, err := physics.ParseBroadphase(*broadphase); err != nil {
				return err
			}
			cfg.Broadphase = *broadphase
		}
		step := *dt
		if step <= 0 {
			step = 1 / float64(cfg.FPS)
		}
		sc, err := buildScene(cfg, *presetName, *layoutPath, *seed, log)
		if err != nil {
			return err
		}
		preset := sc.Preset
		rec := events.NewRecorder(0)
		rec.Attach(sc.World)

		start := time.Now()
		for i := 0; i < *steps; i++ {
			sc.Update(step)
		}
		wall := time.Since(start)

		counts := rec.Counts()
		kinds := make([]string, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		fmt.Printf("%s: %d steps of %.4fs in %v, %d bodies left, %d escaped\n",
			preset, *steps, step, wall.Round(time.Millisecond), len(sc.World.Bodies()), sc.Escaped())
		for _, k := range kinds {
			fmt.Printf("  %-20s %d\n", k, counts[k])
		}
		log.Logf("headless: %s seed %d steps %d collisions %d wall %v", preset, *seed, *steps, rec.Total(), wall)

		if *out != "" {
			if err := rec.Export(*out); err != nil {
				return err
			}
			log.Logf("headless: wrote %d events to %s", len(rec.Events()), *out)
		}
		return nil
	})
}
