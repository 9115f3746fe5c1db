package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"physics-engine/internal/commands"
	"physics-engine/internal/physics"
	"physics-engine/internal/scene"
	"physics-engine/internal/vec2"
)

const defaultEventsPath = "logs/events.json"

// consoleCommands builds the registry behind the in-window console. Commands take positional
// arguments so a value typed once does not stick to the next call.
func consoleCommands(s *session) *commands.Registry {
	reg := commands.NewRegistry()
	add := func(name, summary string, run func(args []string) error) {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		reg.Register(name, summary, fs, func() error { return run(fs.Args()) })
	}

	add("help", "list console commands", func([]string) error {
		s.log.Logf("commands: %s", strings.Join(reg.Names(), ", "))
		return nil
	})

	presetFS := flag.NewFlagSet("preset", flag.ContinueOnError)
	presetFS.SetOutput(io.Discard)
	seed := presetFS.Int64("seed", 0, "random seed (0 keeps the current one)")
	reg.Register("preset", "preset [-seed n] <name>: rebuild the scene from a preset", presetFS, func() error {
		if presetFS.NArg() != 1 {
			return fmt.Errorf("want one of %v", scene.PresetNames())
		}
		preset, err := scene.ParsePreset(presetFS.Arg(0))
		if err != nil {
			return err
		}
		n := *seed
		*seed = 0
		if n == 0 {
			n = s.sc.Seed()
		}
		sc, err := scene.New(s.cfg, preset, n, s.log)
		if err != nil {
			return err
		}
		s.load(sc)
		return nil
	})

	add("broadphase", "broadphase <grid|quadtree|naive>", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("want one broad-phase kind")
		}
		b, err := physics.ParseBroadphase(args[0])
		if err != nil {
			return err
		}
		s.sc.World.SetBroadphase(b)
		s.log.Logf("console: broadphase %s", b)
		return nil
	})

	add("gravity", "gravity <x> <y>", func(args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("want x and y")
		}
		x, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}
		y, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return err
		}
		s.sc.World.SetGravity(vec2.New(x, y))
		s.log.Logf("console: gravity %s", vec2.New(x, y))
		return nil
	})

	add("ccd", "ccd <true|false>", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("want true or false")
		}
		on, err := strconv.ParseBool(args[0])
		if err != nil {
			return err
		}
		s.sc.World.SetCCD(on)
		s.log.Logf("console: ccd %v", on)
		return nil
	})

	add("scale", "scale <factor>: time scale", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("want a factor")
		}
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}
		s.sc.SetTimeScale(f)
		s.log.Logf("console: time scale %.2f", s.sc.TimeScale)
		return nil
	})

	add("reset", "restore the scene as built", func([]string) error {
		return s.sc.Reset()
	})

	add("export", "export [path]: write recorded collision events as JSON", func(args []string) error {
		path := defaultEventsPath
		if len(args) > 0 {
			path = args[0]
		}
		if err := s.rec.Export(path); err != nil {
			return err
		}
		s.log.Logf("console: %d events written to %s", len(s.rec.Events()), path)
		return nil
	})
	return reg
}
