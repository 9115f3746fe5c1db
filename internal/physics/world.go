package physics

import (
	"fmt"
	"math"
	"time"

	uuid "github.com/satori/go.uuid"

	"physics-engine/internal/broadphase"
	"physics-engine/internal/vec2"
)

// Broadphase selects the partitioner used to find candidate pairs.
type Broadphase string

const (
	BroadphaseGrid     Broadphase = "grid"
	BroadphaseQuadTree Broadphase = "quadtree"
	BroadphaseNaive    Broadphase = "naive"
)

// ParseBroadphase accepts "grid", "quadtree" or "naive".
func ParseBroadphase(s string) (Broadphase, error) {
	switch b := Broadphase(s); b {
	case BroadphaseGrid, BroadphaseQuadTree, BroadphaseNaive:
		return b, nil
	}
	return "", fmt.Errorf("unknown broadphase %q", s)
}

// Config holds the world's tuning. Gravity is in units per second squared with +Y pointing down.
type Config struct {
	Gravity vec2.Vec
	// Damping is the fraction of velocity removed per second.
	Damping     float64
	MaxVelocity float64

	Broadphase Broadphase
	CellSize   float64
	MaxObjects int
	MaxLevels  int

	CCD   bool
	Sweep Sweep

	CorrectionFactor  float64
	VelocityThreshold float64
}

// DefaultConfig matches a 1080x1920 portrait scene measured in pixels.
func DefaultConfig() Config {
	return Config{
		Gravity:           vec2.New(0, 981),
		Damping:           0.1,
		MaxVelocity:       2000,
		Broadphase:        BroadphaseGrid,
		CellSize:          100,
		MaxObjects:        10,
		MaxLevels:         5,
		CCD:               true,
		Sweep:             DefaultSweep,
		CorrectionFactor:  0.8,
		VelocityThreshold: 0.01,
	}
}

// Logger receives the world's diagnostics. *logger.Logger satisfies it.
type Logger interface {
	Logf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Logf(string, ...any) {}

// ContactListener is called once per resolved contact, after the bodies' own callbacks.
type ContactListener func(c *Contact)

// Stats describes the most recent step.
type Stats struct {
	Step        uint64
	Bodies      int
	Pairs       int // candidate pairs from the broad phase
	Checks      int // narrow-phase tests run
	Contacts    int
	Swept       int // contacts found only by the swept test
	Guarded     int // bodies whose non-finite state was reset
	PhysicsTime time.Duration
}

// World owns the body list and advances it. It is not safe for concurrent use; callbacks run
// synchronously inside Step and may add or remove bodies, which takes effect once the step ends.
type World struct {
	cfg      Config
	bodies   []*Body
	members  map[uuid.UUID]*Body
	resolver *Resolver
	log      Logger

	grid  *broadphase.Grid[*Body]
	tree  *broadphase.QuadTree[*Body]
	naive *broadphase.Naive[*Body]

	listeners []ContactListener

	contacts []Contact
	swept    []*Body

	inStep        bool
	pendingAdd    []*Body
	pendingRemove []*Body

	stats   Stats
	elapsed float64
}

// NewWorld returns an empty world. Zero-valued tuning fields fall back to DefaultConfig.
func NewWorld(cfg Config) *World {
	def := DefaultConfig()
	if cfg.Broadphase == "" {
		cfg.Broadphase = def.Broadphase
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = def.CellSize
	}
	if cfg.MaxVelocity <= 0 {
		cfg.MaxVelocity = def.MaxVelocity
	}
	if cfg.CorrectionFactor <= 0 {
		cfg.CorrectionFactor = def.CorrectionFactor
	}
	if cfg.VelocityThreshold <= 0 {
		cfg.VelocityThreshold = def.VelocityThreshold
	}
	cfg.Sweep = cfg.Sweep.normalized()
	return &World{
		cfg:     cfg,
		members: make(map[uuid.UUID]*Body),
		resolver: &Resolver{
			PositionCorrection: true,
			CorrectionFactor:   cfg.CorrectionFactor,
			VelocityThreshold:  cfg.VelocityThreshold,
		},
		log:   nopLogger{},
		grid:  broadphase.NewGrid[*Body](cfg.CellSize),
		tree:  broadphase.NewQuadTree[*Body](vec2.AABB{}, cfg.MaxObjects, cfg.MaxLevels),
		naive: broadphase.NewNaive[*Body](),
	}
}

// Config returns the current world configuration.
func (w *World) Config() Config {
	return w.cfg
}

// SetLogger routes diagnostics to l. A nil logger silences them.
func (w *World) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	w.log = l
}

// SetGravity replaces the gravity acceleration.
func (w *World) SetGravity(g vec2.Vec) {
	w.cfg.Gravity = g
}

// SetBroadphase switches the partitioner used from the next step on.
func (w *World) SetBroadphase(b Broadphase) {
	w.cfg.Broadphase = b
}

// SetCCD turns swept circle detection on or off.
func (w *World) SetCCD(on bool) {
	w.cfg.CCD = on
}

// AddBody adds b to the world. Adding a body twice is a no-op.
func (w *World) AddBody(b *Body) {
	if b == nil {
		return
	}
	if w.inStep {
		w.pendingAdd = append(w.pendingAdd, b)
		return
	}
	if _, ok := w.members[b.id]; ok {
		return
	}
	b.prevPosition = b.Position
	w.members[b.id] = b
	w.bodies = append(w.bodies, b)
}

// RemoveBody removes b and reports whether it was present. During a step the removal is deferred
// and reported as successful when b is a member; a body added earlier in the same step is dropped
// from the pending additions instead.
func (w *World) RemoveBody(b *Body) bool {
	if b == nil {
		return false
	}
	if w.inStep && w.dropPendingAdd(b) {
		return true
	}
	if _, ok := w.members[b.id]; !ok {
		return false
	}
	if w.inStep {
		w.pendingRemove = append(w.pendingRemove, b)
		return true
	}
	delete(w.members, b.id)
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	return true
}

// Bodies returns the bodies in insertion order. The slice must not be modified.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Body looks a body up by ID.
func (w *World) Body(id uuid.UUID) (*Body, bool) {
	b, ok := w.members[id]
	return b, ok
}

// Clear removes every body. Listeners are kept.
func (w *World) Clear() {
	w.bodies = w.bodies[:0]
	clear(w.members)
}

// OnCollision registers a listener called for every resolved contact.
func (w *World) OnCollision(fn ContactListener) {
	w.listeners = append(w.listeners, fn)
}

// Stats returns the counters of the last step.
func (w *World) Stats() Stats {
	return w.stats
}

// Elapsed returns the simulated time in seconds.
func (w *World) Elapsed() float64 {
	return w.elapsed
}

// Step advances the simulation by dt seconds: animation, forces and integration, broad phase,
// narrow phase (discrete, then swept for circle pairs), resolution, velocity clamp. Non-positive
// or non-finite dt is ignored.
func (w *World) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	start := time.Now()
	w.inStep = true
	w.stats = Stats{Step: w.stats.Step + 1, Bodies: len(w.bodies)}

	for _, b := range w.bodies {
		b.Shape.advance(dt)
	}
	w.integrate(dt)
	w.detect(dt)
	w.resolve(dt)
	w.clampAll()

	w.inStep = false
	w.flush()
	w.elapsed += dt
	w.stats.PhysicsTime = time.Since(start)
}

func (w *World) integrate(dt float64) {
	g := w.cfg.Gravity
	for _, b := range w.bodies {
		b.prevPosition = b.Position
		if b.static {
			b.forces = b.forces[:0]
			continue
		}
		acc := vec2.Zero
		if b.invMass > 0 {
			acc = g
			if speed := b.Velocity.Len(); b.Drag > 0 && speed > 0 {
				drag := b.Velocity.Scale(-0.5 * b.Drag * speed * b.invMass)
				acc = acc.Add(drag)
			}
			for _, f := range b.forces {
				acc = acc.Add(f.Scale(b.invMass))
			}
		}
		b.forces = b.forces[:0]
		b.Acceleration = acc

		b.Position = b.Position.Add(b.Velocity.Scale(dt)).Add(acc.Scale(0.5 * dt * dt))
		b.Velocity = b.Velocity.Add(acc.Scale(dt))
		w.clamp(b)
		if w.cfg.Damping > 0 {
			b.Velocity = b.Velocity.Scale(math.Max(0, 1-w.cfg.Damping*dt))
		}
	}
}

func (w *World) partitioner() broadphase.Partitioner[*Body] {
	switch w.cfg.Broadphase {
	case BroadphaseQuadTree:
		bounds := vec2.AABB{}
		for i, b := range w.bodies {
			if i == 0 {
				bounds = b.box
				continue
			}
			bounds = bounds.Union(b.box)
		}
		w.tree.Reset(bounds)
		return w.tree
	case BroadphaseNaive:
		w.naive.Clear()
		return w.naive
	}
	w.grid.Clear()
	return w.grid
}

func (w *World) detect(dt float64) {
	w.contacts = w.contacts[:0]
	w.swept = w.swept[:0]
	for _, b := range w.bodies {
		b.box = b.sweptAABB()
		b.toi = dt
	}
	p := w.partitioner()
	for _, b := range w.bodies {
		p.Insert(b, b.box)
	}
	p.Pairs(func(a, b *Body) {
		w.stats.Pairs++
		if a.static && b.static {
			return
		}
		if !a.box.Overlaps(b.box) {
			return
		}
		w.stats.Checks++
		c, ok := Detect(a, b)
		if !ok && w.cfg.CCD {
			c, ok = w.detectSwept(a, b, dt)
		}
		if ok {
			w.contacts = append(w.contacts, c)
		}
	})
	w.stats.Contacts = len(w.contacts)
}

// detectSwept replays the step for a circle pair from the start-of-step positions.
func (w *World) detectSwept(a, b *Body, dt float64) (Contact, bool) {
	if a.Kind() != KindCircle || b.Kind() != KindCircle {
		return Contact{}, false
	}
	va := a.Position.Sub(a.prevPosition).Scale(1 / dt)
	vb := b.Position.Sub(b.prevPosition).Scale(1 / dt)
	c, ok := sweep(a, b, a.prevPosition, va, b.prevPosition, vb, dt, w.cfg.Sweep)
	if !ok {
		return Contact{}, false
	}
	t, _ := c.TimeOfImpact()
	w.markSwept(a, t)
	w.markSwept(b, t)
	w.stats.Swept++
	return c, true
}

func (w *World) markSwept(b *Body, t float64) {
	if b.static {
		return
	}
	if !w.isSwept(b) {
		w.swept = append(w.swept, b)
	}
	if t < b.toi {
		b.toi = t
	}
}

func (w *World) isSwept(b *Body) bool {
	for _, s := range w.swept {
		if s == b {
			return true
		}
	}
	return false
}

// resolve moves swept bodies back to their earliest time of impact, resolves every contact in
// discovery order, then lets swept bodies travel for the rest of the step with their new velocity.
func (w *World) resolve(dt float64) {
	for _, b := range w.swept {
		b.Position = b.prevPosition.Lerp(b.Position, b.toi/dt)
	}
	for i := range w.contacts {
		c := &w.contacts[i]
		w.resolver.ResolveContact(c)
		for _, fn := range w.listeners {
			fn(c)
		}
	}
	for _, b := range w.swept {
		w.clamp(b)
		b.Position = b.Position.Add(b.Velocity.Scale(dt - b.toi))
	}
}

func (w *World) clampAll() {
	for _, b := range w.bodies {
		if b.static {
			continue
		}
		w.clamp(b)
	}
}

// clamp caps the speed at MaxVelocity and resets non-finite state.
func (w *World) clamp(b *Body) {
	if !b.Velocity.IsFinite() {
		w.log.Logf("physics: body %s velocity %s not finite, reset to zero", b.id, b.Velocity)
		b.Velocity = vec2.Zero
		w.stats.Guarded++
	}
	if !b.Position.IsFinite() {
		w.log.Logf("physics: body %s position %s not finite, restored to %s", b.id, b.Position, b.prevPosition)
		b.Position = b.prevPosition
		w.stats.Guarded++
	}
	b.Velocity = b.Velocity.ClampLen(w.cfg.MaxVelocity)
}

func (w *World) dropPendingAdd(b *Body) bool {
	found := false
	kept := w.pendingAdd[:0]
	for _, p := range w.pendingAdd {
		if p == b {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	w.pendingAdd = kept
	return found
}

func (w *World) flush() {
	for _, b := range w.pendingRemove {
		w.RemoveBody(b)
	}
	for _, b := range w.pendingAdd {
		w.AddBody(b)
	}
	w.pendingRemove = w.pendingRemove[:0]
	w.pendingAdd = w.pendingAdd[:0]
}
