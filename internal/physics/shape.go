package physics

import (
	"math"

	"physics-engine/internal/mathutil"
	"physics-engine/internal/vec2"
)

// ShapeKind tags the concrete shape carried by a body. Narrow-phase dispatch switches on pairs of kinds.
type ShapeKind int

const (
	KindCircle ShapeKind = iota
	KindSegment
	KindRing
)

// String returns the lower-case kind name.
func (k ShapeKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindSegment:
		return "segment"
	case KindRing:
		return "ring"
	}
	return "unknown"
}

// Shape is the geometry of a body, expressed relative to the body position.
// The set of shapes is closed: Circle, Segment and Ring.
type Shape interface {
	Kind() ShapeKind
	bounds(pos vec2.Vec) vec2.AABB
	advance(dt float64)
	clone() (Shape, error)
}

// Pulse animates a circle's radius around its base radius.
type Pulse struct {
	Enabled   bool
	Speed     float64 // radians per second
	Amplitude float64 // fraction of the base radius
	Phase     float64
}

// Circle is a disc. Rotation and AngularVelocity only drive visuals; they take no part in collisions.
type Circle struct {
	Radius          float64
	BaseRadius      float64
	Rotation        float64 // radians
	AngularVelocity float64
	Pulse           Pulse
}

// Kind returns KindCircle.
func (c *Circle) Kind() ShapeKind {
	return KindCircle
}

func (c *Circle) bounds(pos vec2.Vec) vec2.AABB {
	return vec2.Around(pos, c.Radius)
}

func (c *Circle) advance(dt float64) {
	c.Rotation += c.AngularVelocity * dt
	if c.Pulse.Enabled {
		c.Pulse.Phase += c.Pulse.Speed * dt
		c.Radius = c.BaseRadius * (1 + math.Sin(c.Pulse.Phase)*c.Pulse.Amplitude)
	}
}

// Segment is a capsule: a line from A to B swept by a disc of diameter Thickness.
// A and B are offsets from the body position.
type Segment struct {
	A, B      vec2.Vec
	Thickness float64
}

// Kind returns KindSegment.
func (s *Segment) Kind() ShapeKind {
	return KindSegment
}

func (s *Segment) bounds(pos vec2.Vec) vec2.AABB {
	start, end := s.Endpoints(pos)
	return vec2.Box(start, end).Expand(s.Thickness)
}

func (s *Segment) advance(float64) {}

// Endpoints returns the world-space endpoints for a body at pos.
func (s *Segment) Endpoints(pos vec2.Vec) (vec2.Vec, vec2.Vec) {
	return pos.Add(s.A), pos.Add(s.B)
}

// Length returns the distance between the end points.
func (s *Segment) Length() float64 {
	return s.A.Dist(s.B)
}

// Direction is the unit vector from A to B, zero for a degenerate segment.
func (s *Segment) Direction() vec2.Vec {
	return s.B.Sub(s.A).Normalize()
}

// Normal is the left-hand perpendicular of Direction, zero for a degenerate segment.
func (s *Segment) Normal() vec2.Vec {
	return s.Direction().Perp()
}

// ClosestPoint returns the point on the centreline closest to p, for a body at pos.
func (s *Segment) ClosestPoint(pos, p vec2.Vec) vec2.Vec {
	start, end := s.Endpoints(pos)
	return mathutil.ClosestOnSegment(p, start, end)
}

// DistanceTo is the distance from p to the centreline.
func (s *Segment) DistanceTo(pos, p vec2.Vec) float64 {
	return p.Dist(s.ClosestPoint(pos, p))
}
