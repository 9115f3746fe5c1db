package scene

import (
	"fmt"
	"math/rand"

	"physics-engine/internal/engineconfig"
	"physics-engine/internal/logger"
	"physics-engine/internal/physics"
	"physics-engine/internal/vec2"
)

// Body tags set by the presets.
const (
	TagBall = "ball"
	TagRing = "ring"
	TagWall = "wall"
)

// escapeMargin is how far past the window edge a ball may travel before it is removed.
const escapeMargin = 200

// Scene owns a physics world built from a preset and drives it with pause and time scale.
// Update runs the simulation; drawing lives in the render package.
type Scene struct {
	World  *physics.World
	Config engineconfig.Config
	Preset Preset

	Paused    bool
	TimeScale float64
	// SubSteps splits every Update into this many world steps.
	SubSteps int
	// RemoveEscaped drops balls that leave the window by more than escapeMargin.
	RemoveEscaped bool

	seed     int64
	log      *logger.Logger
	snapshot []*physics.Body
	escaped  int
}

// New builds preset into a fresh world. seed makes the random placement reproducible.
func New(cfg engineconfig.Config, preset Preset, seed int64, log *logger.Logger) (*Scene, error) {
	build, ok := presets[preset]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", preset)
	}
	bodies := build(cfg, rand.New(rand.NewSource(seed)))
	for _, b := range bodies {
		b.Restitution = cfg.Restitution
		b.Friction = cfg.Friction
	}
	return newScene(cfg, preset, seed, bodies, log)
}

// NewFromLayout builds the bodies described by l. Materials left unset in l take the config defaults.
func NewFromLayout(cfg engineconfig.Config, l Layout, log *logger.Logger) (*Scene, error) {
	bodies, err := l.Build(cfg)
	if err != nil {
		return nil, err
	}
	return newScene(cfg, Preset(l.Name), 0, bodies, log)
}

func newScene(cfg engineconfig.Config, preset Preset, seed int64, bodies []*physics.Body, log *logger.Logger) (*Scene, error) {
	s := &Scene{
		World:         physics.NewWorld(cfg.World()),
		Config:        cfg,
		Preset:        preset,
		TimeScale:     1,
		SubSteps:      1,
		RemoveEscaped: true,
		seed:          seed,
		log:           log,
	}
	if log != nil {
		s.World.SetLogger(log)
	}
	for _, b := range bodies {
		s.World.AddBody(b)
	}
	if err := s.takeSnapshot(); err != nil {
		return nil, err
	}
	s.logf("scene: built %s with %d bodies (seed %d)", preset, len(s.World.Bodies()), seed)
	return s, nil
}

func (s *Scene) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Logf(format, args...)
	}
}

func (s *Scene) takeSnapshot() error {
	s.snapshot = s.snapshot[:0]
	for _, b := range s.World.Bodies() {
		cp, err := b.Clone()
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		s.snapshot = append(s.snapshot, cp)
	}
	return nil
}

// Reset restores the bodies captured when the scene was built. Listeners on the world are kept.
func (s *Scene) Reset() error {
	s.World.Clear()
	for _, b := range s.snapshot {
		cp, err := b.Clone()
		if err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		s.World.AddBody(cp)
	}
	s.escaped = 0
	s.logf("scene: reset %s", s.Preset)
	return nil
}

// Seed returns the seed the preset was built from, 0 for layouts.
func (s *Scene) Seed() int64 {
	return s.seed
}

// TogglePause pauses or resumes Update.
func (s *Scene) TogglePause() {
	s.Paused = !s.Paused
}

// SetTimeScale clamps scale to [0.1, 4].
func (s *Scene) SetTimeScale(scale float64) {
	s.TimeScale = min(max(scale, 0.1), 4)
}

// Update advances the world by dt scaled by TimeScale. It does nothing while paused.
func (s *Scene) Update(dt float64) {
	if s.Paused || dt <= 0 {
		return
	}
	n := max(s.SubSteps, 1)
	h := dt * s.TimeScale / float64(n)
	for i := 0; i < n; i++ {
		s.World.Step(h)
	}
	if s.RemoveEscaped {
		s.removeEscaped()
	}
}

// Escaped returns how many balls left the window since the last reset.
func (s *Scene) Escaped() int {
	return s.escaped
}

func (s *Scene) bounds() vec2.AABB {
	return vec2.Box(vec2.Zero, vec2.New(float64(s.Config.Width), float64(s.Config.Height))).Expand(escapeMargin)
}

func (s *Scene) removeEscaped() {
	bounds := s.bounds()
	var gone []*physics.Body
	for _, b := range s.World.Bodies() {
		if b.HasTag(TagBall) && !bounds.Contains(b.Position) {
			gone = append(gone, b)
		}
	}
	for _, b := range gone {
		s.World.RemoveBody(b)
		s.escaped++
		s.logf("scene: ball %s escaped at %s", b.ID(), b.Position)
	}
}
