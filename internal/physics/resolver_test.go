package physics

import (
	"math"
	"testing"

	"physics-engine/internal/vec2"
)

func TestResolveElasticExchange(t *testing.T) {
	a := NewCircle(vec2.New(0, 0), 5, 1, false)
	b := NewCircle(vec2.New(9, 0), 5, 1, false)
	for _, body := range []*Body{a, b} {
		body.Restitution = 1
		body.Friction = 0
	}
	a.Velocity = vec2.New(10, 0)

	c, ok := Detect(a, b)
	if !ok {
		t.Fatal("expected collision")
	}
	NewResolver().ResolveContact(&c)

	if !a.Velocity.Equal(vec2.Zero, eps) {
		t.Errorf("a.Velocity = %v, want zero", a.Velocity)
	}
	if !b.Velocity.Equal(vec2.New(10, 0), eps) {
		t.Errorf("b.Velocity = %v, want (10, 0)", b.Velocity)
	}
}

func TestResolveFrictionAgainstStaticSegment(t *testing.T) {
	seg := NewSegment(vec2.New(-100, 0), vec2.New(100, 0), 0, true)
	circle := NewCircle(vec2.New(0, -4), 5, 1, false)
	circle.Velocity = vec2.New(10, 10)

	c, ok := Detect(circle, seg)
	if !ok {
		t.Fatal("expected collision")
	}
	NewResolver().ResolveContact(&c)

	// j = 1.8*10 = 18 along +Y; friction capped at 0.3*18 = 5.4 along -X.
	if !circle.Velocity.Equal(vec2.New(4.6, -8), 1e-9) {
		t.Errorf("Velocity = %v, want (4.6, -8)", circle.Velocity)
	}
	if !circle.Position.Equal(vec2.New(0, -4.8), 1e-9) {
		t.Errorf("Position = %v, want (0, -4.8)", circle.Position)
	}
	start, end := seg.Shape.(*Segment).Endpoints(seg.Position)
	if start != vec2.New(-100, 0) || end != vec2.New(100, 0) || seg.Velocity != vec2.Zero {
		t.Error("static segment moved")
	}
}

func TestResolveStaticFriction(t *testing.T) {
	seg := NewSegment(vec2.New(-100, 0), vec2.New(100, 0), 0, true)
	circle := NewCircle(vec2.New(0, -4), 5, 1, false)
	circle.Velocity = vec2.New(1, 10)

	c, _ := Detect(circle, seg)
	NewResolver().ResolveContact(&c)

	// |jt| = 1 is below 0.3*18, so the slide stops.
	if math.Abs(circle.Velocity.X) > 1e-9 {
		t.Errorf("tangential velocity = %v, want 0", circle.Velocity.X)
	}
}

func TestResolveSkipsSeparating(t *testing.T) {
	a := NewCircle(vec2.New(0, 0), 5, 1, false)
	b := NewCircle(vec2.New(8, 0), 5, 1, false)
	a.Velocity = vec2.New(-3, 0)
	b.Velocity = vec2.New(3, 0)

	c, _ := Detect(a, b)
	r := NewResolver()
	r.PositionCorrection = false
	r.ResolveContact(&c)

	if a.Velocity != vec2.New(-3, 0) || b.Velocity != vec2.New(3, 0) {
		t.Errorf("velocities changed to %v, %v", a.Velocity, b.Velocity)
	}
}

func TestResolveUsesMinimumRestitution(t *testing.T) {
	a := NewCircle(vec2.New(0, 0), 5, 1, false)
	b := NewCircle(vec2.New(9, 0), 5, 1, true)
	a.Restitution = 0.5
	b.Restitution = 1
	a.Friction = 0
	a.Velocity = vec2.New(10, 0)

	c, _ := Detect(a, b)
	NewResolver().ResolveContact(&c)

	if !a.Velocity.Equal(vec2.New(-5, 0), eps) {
		t.Errorf("a.Velocity = %v, want (-5, 0)", a.Velocity)
	}
	if b.Position != vec2.New(9, 0) || b.Velocity != vec2.Zero {
		t.Error("static body changed")
	}
}

func TestResolveCallbacks(t *testing.T) {
	a := NewCircle(vec2.New(0, 0), 5, 1, false)
	b := NewCircle(vec2.New(8, 0), 5, 1, false)
	var calls []string
	a.OnCollision = func(self, other *Body, c *Contact) {
		if self != a || other != b {
			t.Error("a's callback got the wrong bodies")
		}
		calls = append(calls, "a")
	}
	b.OnCollision = func(self, other *Body, c *Contact) {
		if self != b || other != a {
			t.Error("b's callback got the wrong bodies")
		}
		calls = append(calls, "b")
	}

	c, _ := Detect(a, b)
	NewResolver().Resolve([]Contact{c})

	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Errorf("calls = %v, want [a b]", calls)
	}
}

func TestResolveBothImmovable(t *testing.T) {
	a := NewCircle(vec2.New(0, 0), 5, 1, true)
	b := NewCircle(vec2.New(8, 0), 5, 1, true)
	b.Velocity = vec2.New(-1, 0)

	c, _ := Detect(a, b)
	NewResolver().ResolveContact(&c)

	if a.Position != vec2.Zero || b.Position != vec2.New(8, 0) || b.Velocity != vec2.New(-1, 0) {
		t.Error("immovable bodies changed")
	}
}
