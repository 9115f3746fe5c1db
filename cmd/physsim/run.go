package main

import (
	"flag"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-engine/internal/commands"
	"physics-engine/internal/console"
	"physics-engine/internal/debug"
	"physics-engine/internal/engineconfig"
	"physics-engine/internal/events"
	"physics-engine/internal/graphics"
	"physics-engine/internal/logger"
	"physics-engine/internal/render"
	"physics-engine/internal/scene"
)

const eventHistory = 512

// session is the state of an interactive run. Console commands may swap the scene, so the frame
// callbacks always go through it.
type session struct {
	cfg      engineconfig.Config
	log      *logger.Logger
	subSteps int

	sc   *scene.Scene
	rec  *events.Recorder
	view *render.Renderer
}

// load makes sc the running scene with a fresh event recorder.
func (s *session) load(sc *scene.Scene) {
	sc.SubSteps = s.subSteps
	s.sc = sc
	s.rec = events.NewRecorder(eventHistory)
	s.rec.Attach(sc.World)
}

func registerRun(reg *commands.Registry, log *logger.Logger) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "config file (default $PHYSICS_CONFIG or config/physics.yaml)")
	presetName := fs.String("preset", string(scene.Rings), "scene preset")
	layoutPath := fs.String("layout", "", "YAML layout file, used instead of -preset")
	seed := fs.Int64("seed", time.Now().UnixNano(), "random seed")
	subSteps := fs.Int("substeps", 2, "physics steps per frame")
	scale := fs.Float64("scale", 0.5, "window size relative to the configured scene size")

	reg.Register("run", "open a window and run a scene interactively", fs, func() error {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		sc, err := buildScene(cfg, *presetName, *layoutPath, *seed, log)
		if err != nil {
			return err
		}
		s := &session{cfg: cfg, log: log, subSteps: *subSteps, view: render.New()}
		s.load(sc)
		term := console.New(log, consoleCommands(s))
		overlay := debug.New()
		var renderMs float64

		win := graphics.Window{
			Width:  int(float64(cfg.Width) * *scale),
			Height: int(float64(cfg.Height) * *scale),
			FPS:    cfg.FPS,
			Title:  "physsim - " + string(sc.Preset),
		}
		log.Logf("run: %s %dx%d seed %d broadphase %s", sc.Preset, win.Width, win.Height, *seed, cfg.Broadphase)

		update := func(dt float32) {
			term.Update()
			if !term.IsOpen() {
				handleKeys(s.sc, s.view, overlay, log)
			}
			before := s.sc.World.Stats().Step
			s.sc.Update(float64(dt))
			s.view.AddEvents(s.rec.Since(before + 1))
			s.view.Update(s.sc.World, dt)
		}
		draw := func() {
			start := time.Now()
			s.view.Fit(rl.GetScreenWidth(), rl.GetScreenHeight(), float64(cfg.Width), float64(cfg.Height))
			s.view.Draw(s.sc.World, s.sc.World.Config().CellSize)
			renderMs = float64(time.Since(start).Microseconds()) / 1000
			overlay.Draw(s.sc.World.Stats(), debug.Info{
				Preset:     string(s.sc.Preset),
				Broadphase: s.sc.World.Config().Broadphase,
				Paused:     s.sc.Paused,
				TimeScale:  s.sc.TimeScale,
				Escaped:    s.sc.Escaped(),
				Events:     s.rec.Total(),
				RenderTime: renderMs,
			})
			term.Draw()
		}
		graphics.Run(win, update, draw)
		log.Logf("run: closed after %.1fs simulated, %d collisions", s.sc.World.Elapsed(), s.rec.Total())
		return nil
	})
}

// handleKeys maps the interactive controls: SPACE pause, D overlay, R reset, G grid, B boxes,
// T trails, C continuous detection, UP/DOWN time scale. ` opens the console.
func handleKeys(sc *scene.Scene, view *render.Renderer, overlay *debug.Debug, log *logger.Logger) {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		sc.TogglePause()
	case rl.IsKeyPressed(rl.KeyD):
		overlay.Toggle()
	case rl.IsKeyPressed(rl.KeyR):
		if err := sc.Reset(); err != nil {
			log.Errorf("reset: %v", err)
		}
	case rl.IsKeyPressed(rl.KeyG):
		view.ShowGrid = !view.ShowGrid
	case rl.IsKeyPressed(rl.KeyB):
		view.ShowBoxes = !view.ShowBoxes
	case rl.IsKeyPressed(rl.KeyT):
		view.ShowTrails = !view.ShowTrails
	case rl.IsKeyPressed(rl.KeyC):
		on := !sc.World.Config().CCD
		sc.World.SetCCD(on)
		log.Logf("run: ccd %v", on)
	case rl.IsKeyPressed(rl.KeyUp):
		sc.SetTimeScale(sc.TimeScale * 2)
	case rl.IsKeyPressed(rl.KeyDown):
		sc.SetTimeScale(sc.TimeScale / 2)
	}
}
