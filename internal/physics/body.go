package physics

import (
	"math"
	"sort"

	uuid "github.com/satori/go.uuid"

	"physics-engine/internal/vec2"
)

// Material defaults for new bodies.
const (
	DefaultRestitution = 0.8
	DefaultFriction    = 0.3
	DefaultDrag        = 0.1
)

// CollisionFunc is called synchronously from World.Step for every resolved contact involving the body.
// self is the body the callback is attached to; other is the body it hit.
type CollisionFunc func(self, other *Body, c *Contact)

// Body is a 2D rigid body carrying one shape. Static bodies never move and never receive impulses;
// their inverse mass is always zero.
type Body struct {
	id uuid.UUID

	Position     vec2.Vec
	Velocity     vec2.Vec
	Acceleration vec2.Vec

	mass    float64
	invMass float64
	static  bool

	// Restitution is the fraction of normal velocity kept after a bounce, in [0, 1].
	Restitution float64
	// Friction is the Coulomb coefficient, >= 0.
	Friction float64
	// Drag scales the quadratic air drag applied each step.
	Drag float64

	Shape Shape

	Tags        map[string]struct{}
	OnCollision CollisionFunc

	forces []vec2.Vec

	// Step-scoped state owned by World.
	prevPosition vec2.Vec
	box          vec2.AABB
	toi          float64
}

// NewBody returns a body with the given shape at position. Velocity is zero.
// mass is used for collision response; non-positive mass defaults to 1 and an infinite mass makes the
// body immovable by forces and impulses. Static bodies ignore gravity, velocity and impulses.
func NewBody(shape Shape, position vec2.Vec, mass float64, static bool) *Body {
	if mass <= 0 || math.IsNaN(mass) {
		mass = 1
	}
	b := &Body{
		id:           uuid.Must(uuid.NewV4()),
		Position:     position,
		Restitution:  DefaultRestitution,
		Friction:     DefaultFriction,
		Drag:         DefaultDrag,
		Shape:        shape,
		Tags:         make(map[string]struct{}),
		prevPosition: position,
	}
	b.mass = mass
	b.SetStatic(static)
	return b
}

// NewCircle returns a circle body centred on position.
func NewCircle(position vec2.Vec, radius, mass float64, static bool) *Body {
	return NewBody(&Circle{Radius: radius, BaseRadius: radius}, position, mass, static)
}

// NewSegment returns a capsule body between start and end. The body position is the midpoint and
// the mass is infinite, so a non-static segment moves only by the velocity it is given.
func NewSegment(start, end vec2.Vec, thickness float64, static bool) *Body {
	center := start.Lerp(end, 0.5)
	seg := &Segment{A: start.Sub(center), B: end.Sub(center), Thickness: thickness}
	return NewBody(seg, center, math.Inf(1), static)
}

// NewRing returns a ring body centred on center with an optional gap. Angles are in degrees.
func NewRing(center vec2.Vec, inner, outer, gapAngle, gapStart float64, static bool) *Body {
	ring := &Ring{InnerRadius: inner, OuterRadius: outer, GapAngle: gapAngle, GapStart: gapStart}
	return NewBody(ring, center, math.Inf(1), static)
}

// ID returns the body's identity. It is unique per body and stable for its lifetime.
func (b *Body) ID() uuid.UUID {
	return b.id
}

// Mass returns the body mass.
func (b *Body) Mass() float64 {
	return b.mass
}

// InvMass returns 1/mass, or 0 for static and infinite-mass bodies.
func (b *Body) InvMass() float64 {
	return b.invMass
}

// Static reports whether the body is immovable.
func (b *Body) Static() bool {
	return b.static
}

// SetStatic switches the body between static and dynamic, keeping the inverse mass consistent.
func (b *Body) SetStatic(static bool) {
	b.static = static
	b.updateInvMass()
}

// SetMass changes the mass. Non-positive values default to 1.
func (b *Body) SetMass(mass float64) {
	if mass <= 0 || math.IsNaN(mass) {
		mass = 1
	}
	b.mass = mass
	b.updateInvMass()
}

func (b *Body) updateInvMass() {
	if b.static || math.IsInf(b.mass, 1) {
		b.invMass = 0
		return
	}
	b.invMass = 1 / b.mass
}

// Kind returns the tag of the body's shape.
func (b *Body) Kind() ShapeKind {
	return b.Shape.Kind()
}

// AABB returns the bounding box of the body's shape at its current position.
func (b *Body) AABB() vec2.AABB {
	return b.Shape.bounds(b.Position)
}

// AddForce accumulates a force applied during the next step. Forces are cleared after every step.
func (b *Body) AddForce(f vec2.Vec) {
	b.forces = append(b.forces, f)
}

// Forces returns the forces accumulated since the last step.
func (b *Body) Forces() []vec2.Vec {
	return b.forces
}

// AddImpulse changes velocity immediately by impulse/mass. It has no effect on static bodies.
func (b *Body) AddImpulse(impulse vec2.Vec) {
	if b.invMass == 0 {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Scale(b.invMass))
}

// AddTag labels the body with tag.
func (b *Body) AddTag(tag string) {
	if b.Tags == nil {
		b.Tags = make(map[string]struct{})
	}
	b.Tags[tag] = struct{}{}
}

// HasTag reports whether the body carries tag.
func (b *Body) HasTag(tag string) bool {
	_, ok := b.Tags[tag]
	return ok
}

// RemoveTag drops tag from the body.
func (b *Body) RemoveTag(tag string) {
	delete(b.Tags, tag)
}

// TagList returns the tags in sorted order.
func (b *Body) TagList() []string {
	out := make([]string, 0, len(b.Tags))
	for t := range b.Tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Circle returns the circle shape, or false when the body is not a circle.
func (b *Body) Circle() (*Circle, bool) {
	c, ok := b.Shape.(*Circle)
	return c, ok
}

// Segment returns the segment shape, or false when the body is not a segment.
func (b *Body) Segment() (*Segment, bool) {
	s, ok := b.Shape.(*Segment)
	return s, ok
}

// Ring returns the ring shape, or false when the body is not a ring.
func (b *Body) Ring() (*Ring, bool) {
	r, ok := b.Shape.(*Ring)
	return r, ok
}

// ClosestPointOnSegment returns the point of a segment body's centreline closest to p.
// For other shapes it returns the body position.
func (b *Body) ClosestPointOnSegment(p vec2.Vec) vec2.Vec {
	s, ok := b.Segment()
	if !ok {
		return b.Position
	}
	return s.ClosestPoint(b.Position, p)
}

// PointInGap reports whether p lies in a ring body's gap. Always false for other shapes.
func (b *Body) PointInGap(p vec2.Vec) bool {
	r, ok := b.Ring()
	if !ok {
		return false
	}
	return r.PointInGap(b.Position, p)
}

// CollisionWithCircle tests a ring body against a circle at p with the given radius.
func (b *Body) CollisionWithCircle(p vec2.Vec, radius float64) (RingCollision, bool) {
	r, ok := b.Ring()
	if !ok {
		return RingCollision{}, false
	}
	return r.CollideCircle(b.Position, p, radius)
}

// sweptAABB covers the body at its previous and current positions.
func (b *Body) sweptAABB() vec2.AABB {
	box := b.AABB()
	if b.prevPosition == b.Position {
		return box
	}
	return box.Union(box.Translate(b.prevPosition.Sub(b.Position)))
}
