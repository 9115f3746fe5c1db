package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"physics-engine/internal/commands"
	"physics-engine/internal/logger"
	"physics-engine/internal/physics"
	"physics-engine/internal/scene"
)

func registerBench(reg *commands.Registry, log *logger.Logger) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	configPath := fs.String("config", "", "config file (default $PHYSICS_CONFIG or config/physics.yaml)")
	bodies := fs.Int("bodies", 500, "number of balls")
	steps := fs.Int("steps", 300, "steps per broad phase")
	seed := fs.Int64("seed", 1, "random seed")

	reg.Register("bench", "compare the grid, quadtree and naive broad phases on one scene", fs, func() error {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		kinds := []physics.Broadphase{physics.BroadphaseGrid, physics.BroadphaseQuadTree, physics.BroadphaseNaive}
		results := scene.Benchmark(cfg, kinds, *bodies, *steps, 1/float64(cfg.FPS), *seed)

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "broadphase\tpairs/step\tchecks/step\tcontacts\tswept\tper step")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%v\n",
				r.Broadphase, r.Pairs/max(r.Steps, 1), r.Checks/max(r.Steps, 1), r.Contacts, r.Swept, r.PerStep())
			log.Logf("bench: %s bodies %d steps %d per step %v", r.Broadphase, *bodies, r.Steps, r.PerStep())
		}
		return tw.Flush()
	})
}
