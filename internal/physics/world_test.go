package physics

import (
	"math"
	"math/rand"
	"testing"

	"physics-engine/internal/vec2"
)

// quietConfig has no gravity or damping so tests can predict motion exactly.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Gravity = vec2.Zero
	cfg.Damping = 0
	return cfg
}

func TestParseBroadphase(t *testing.T) {
	for _, s := range []string{"grid", "quadtree", "naive"} {
		if b, err := ParseBroadphase(s); err != nil || string(b) != s {
			t.Errorf("ParseBroadphase(%q) = %q, %v", s, b, err)
		}
	}
	if _, err := ParseBroadphase("octree"); err == nil {
		t.Error("expected error for unknown broadphase")
	}
}

func TestStaticBodiesNeverMove(t *testing.T) {
	for _, kind := range []Broadphase{BroadphaseGrid, BroadphaseQuadTree, BroadphaseNaive} {
		cfg := DefaultConfig()
		cfg.Broadphase = kind
		w := NewWorld(cfg)

		ring := NewRing(vec2.New(540, 960), 300, 320, 40, 0, true)
		ring.Shape.(*Ring).RotationSpeed = 30
		floor := NewSegment(vec2.New(0, 1200), vec2.New(1080, 1200), 8, true)
		pin := NewCircle(vec2.New(540, 700), 20, 1, true)
		pin.Velocity = vec2.New(5, 5)
		statics := []*Body{ring, floor, pin}
		for _, b := range statics {
			w.AddBody(b)
		}
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 40; i++ {
			c := NewCircle(vec2.New(400+rng.Float64()*280, 600+rng.Float64()*300), 8, 1, false)
			c.Velocity = vec2.New(rng.Float64()*800-400, rng.Float64()*800-400)
			w.AddBody(c)
		}

		type snapshot struct{ pos, vel vec2.Vec }
		before := make([]snapshot, len(statics))
		for i, b := range statics {
			before[i] = snapshot{b.Position, b.Velocity}
		}
		for i := 0; i < 120; i++ {
			w.Step(1.0 / 60)
		}
		for i, b := range statics {
			if b.Position != before[i].pos || b.Velocity != before[i].vel {
				t.Errorf("%s: static %v moved from %v to %v", kind, b.Kind(), before[i].pos, b.Position)
			}
		}
	}
}

func TestOverlappingCirclesSeparate(t *testing.T) {
	w := NewWorld(quietConfig())
	a := NewCircle(vec2.New(0, 0), 5, 1, false)
	b := NewCircle(vec2.New(6, 0), 5, 1, false)
	w.AddBody(a)
	w.AddBody(b)
	for i := 0; i < 20; i++ {
		w.Step(1.0 / 60)
	}
	if d := a.Position.Dist(b.Position); d < 10-1e-3 {
		t.Errorf("distance = %v, want >= 10", d)
	}
}

func TestMovingCircleHitsStaticCircle(t *testing.T) {
	w := NewWorld(quietConfig())
	moving := NewCircle(vec2.New(0, 0), 5, 1, false)
	moving.Velocity = vec2.New(100, 0)
	moving.Drag = 0
	wall := NewCircle(vec2.New(20, 0), 5, 1, true)
	w.AddBody(moving)
	w.AddBody(wall)

	var contacts []Contact
	w.OnCollision(func(c *Contact) {
		contacts = append(contacts, *c)
	})
	w.Step(0.2)

	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(contacts))
	}
	c := contacts[0]
	if c.Kind != CircleCircleSwept {
		t.Errorf("Kind = %v, want circle-circle-swept", c.Kind)
	}
	if toi, ok := c.TimeOfImpact(); !ok || math.Abs(toi-0.1) > 1e-6 {
		t.Errorf("TimeOfImpact = %v, %v; want 0.1", toi, ok)
	}
	normal := c.Normal
	if c.A != moving {
		normal = normal.Neg()
	}
	if !normal.Equal(vec2.New(1, 0), 1e-9) {
		t.Errorf("normal from moving body = %v, want (1, 0)", normal)
	}
	if !moving.Velocity.Equal(vec2.New(-80, 0), 1e-9) {
		t.Errorf("Velocity = %v, want (-80, 0)", moving.Velocity)
	}
	if !moving.Position.Equal(vec2.New(2, 0), 1e-3) {
		t.Errorf("Position = %v, want (2, 0)", moving.Position)
	}
	if wall.Position != vec2.New(20, 0) || wall.Velocity != vec2.Zero {
		t.Error("static circle changed")
	}
	if s := w.Stats(); s.Swept != 1 || s.Contacts != 1 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestTunnelingWithoutCCD(t *testing.T) {
	cfg := quietConfig()
	cfg.CCD = false
	w := NewWorld(cfg)
	moving := NewCircle(vec2.New(0, 0), 5, 1, false)
	moving.Velocity = vec2.New(100, 0)
	moving.Drag = 0
	w.AddBody(moving)
	w.AddBody(NewCircle(vec2.New(20, 0), 5, 1, true))

	w.Step(0.2)

	if w.Stats().Contacts != 0 {
		t.Errorf("Contacts = %d, want 0", w.Stats().Contacts)
	}
	if !moving.Position.Equal(vec2.New(20, 0), 1e-9) {
		t.Errorf("Position = %v, want (20, 0)", moving.Position)
	}
}

func TestRingGapRotatesAway(t *testing.T) {
	w := NewWorld(quietConfig())
	ring := NewRing(vec2.Zero, 100, 110, 30, 0, true)
	ring.Shape.(*Ring).RotationSpeed = 90
	ball := NewCircle(vec2.FromAngle(15*math.Pi/180).Scale(95), 10, 1, false)
	w.AddBody(ring)
	w.AddBody(ball)

	hits := 0
	w.OnCollision(func(c *Contact) {
		if c.Kind == CircleRing {
			hits++
		}
	})
	w.Step(0.01)
	if hits != 0 {
		t.Fatalf("collided while inside the gap")
	}
	w.Step(1)
	if hits != 1 {
		t.Errorf("hits = %d after the gap rotated away, want 1", hits)
	}
}

func TestGravityAndClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Damping = 0
	w := NewWorld(cfg)
	b := NewCircle(vec2.Zero, 5, 1, false)
	b.Drag = 0
	w.AddBody(b)

	w.Step(0.1)
	if !b.Velocity.Equal(vec2.New(0, 98.1), 1e-9) {
		t.Errorf("Velocity = %v, want (0, 98.1)", b.Velocity)
	}
	if !b.Position.Equal(vec2.New(0, 4.905), 1e-9) {
		t.Errorf("Position = %v, want (0, 4.905)", b.Position)
	}

	b.Velocity = vec2.New(1e6, 0)
	w.Step(0.001)
	if v := b.Velocity.Len(); v > cfg.MaxVelocity+1e-9 {
		t.Errorf("speed = %v, want <= %v", v, cfg.MaxVelocity)
	}
}

func TestNonFiniteVelocityReset(t *testing.T) {
	w := NewWorld(quietConfig())
	b := NewCircle(vec2.Zero, 5, 1, false)
	b.Velocity = vec2.New(math.NaN(), 0)
	w.AddBody(b)

	w.Step(1.0 / 60)

	if !b.Velocity.IsFinite() || !b.Position.IsFinite() {
		t.Errorf("state not finite: pos %v vel %v", b.Position, b.Velocity)
	}
	if w.Stats().Guarded == 0 {
		t.Error("Guarded = 0, want a reset to be counted")
	}
}

func TestForcesAndDrag(t *testing.T) {
	w := NewWorld(quietConfig())
	b := NewCircle(vec2.Zero, 5, 2, false)
	b.Drag = 0
	b.AddForce(vec2.New(20, 0))
	w.AddBody(b)

	w.Step(1)
	if !b.Velocity.Equal(vec2.New(10, 0), 1e-9) {
		t.Errorf("Velocity = %v, want (10, 0)", b.Velocity)
	}
	if len(b.Forces()) != 0 {
		t.Error("forces not cleared after step")
	}

	b.Drag = 0.1
	w.Step(0.01)
	if b.Velocity.X >= 10 {
		t.Errorf("drag did not slow the body: %v", b.Velocity)
	}
}

func TestRemoveDuringStepIsDeferred(t *testing.T) {
	w := NewWorld(quietConfig())
	a := NewCircle(vec2.New(0, 0), 5, 1, false)
	b := NewCircle(vec2.New(8, 0), 5, 1, false)
	w.AddBody(a)
	w.AddBody(b)
	spawned := NewCircle(vec2.New(500, 500), 5, 1, false)

	w.OnCollision(func(c *Contact) {
		if !w.RemoveBody(b) {
			t.Error("RemoveBody during step reported false")
		}
		w.AddBody(spawned)
		if len(w.Bodies()) != 2 {
			t.Error("body list changed during step")
		}
	})
	w.Step(1.0 / 60)

	bodies := w.Bodies()
	if len(bodies) != 2 || bodies[0] != a || bodies[1] != spawned {
		t.Errorf("bodies after step = %d, want [a spawned]", len(bodies))
	}
	if _, ok := w.Body(b.ID()); ok {
		t.Error("removed body still registered")
	}
	if w.RemoveBody(b) {
		t.Error("second removal reported true")
	}
}

func TestAddThenRemoveDuringStep(t *testing.T) {
	w := NewWorld(quietConfig())
	a := NewCircle(vec2.New(0, 0), 5, 1, false)
	b := NewCircle(vec2.New(8, 0), 5, 1, false)
	w.AddBody(a)
	w.AddBody(b)
	spawned := NewCircle(vec2.New(500, 500), 5, 1, false)

	removed := false
	w.OnCollision(func(c *Contact) {
		if removed {
			return
		}
		w.AddBody(spawned)
		removed = w.RemoveBody(spawned)
	})
	w.Step(1.0 / 60)

	if !removed {
		t.Error("RemoveBody of a body added in the same step reported false")
	}
	if _, ok := w.Body(spawned.ID()); ok {
		t.Error("body added and removed in the same step is still registered")
	}
	if n := len(w.Bodies()); n != 2 {
		t.Errorf("len(Bodies) = %d, want 2", n)
	}
}

func TestAddBodyTwice(t *testing.T) {
	w := NewWorld(DefaultConfig())
	b := NewCircle(vec2.Zero, 5, 1, false)
	w.AddBody(b)
	w.AddBody(b)
	if len(w.Bodies()) != 1 {
		t.Errorf("len(Bodies) = %d, want 1", len(w.Bodies()))
	}
}

func TestBroadphasesAgree(t *testing.T) {
	counts := make(map[Broadphase]int)
	for _, kind := range []Broadphase{BroadphaseGrid, BroadphaseQuadTree, BroadphaseNaive} {
		cfg := quietConfig()
		cfg.Broadphase = kind
		cfg.CCD = false
		w := NewWorld(cfg)
		for _, b := range randomBodies(rand.New(rand.NewSource(3)), 120) {
			w.AddBody(b)
		}
		w.Step(1e-9)
		counts[kind] = w.Stats().Contacts
	}
	if counts[BroadphaseGrid] != counts[BroadphaseNaive] || counts[BroadphaseQuadTree] != counts[BroadphaseNaive] {
		t.Errorf("contact counts differ: %v", counts)
	}
}
