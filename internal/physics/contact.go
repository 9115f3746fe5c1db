package physics

import "physics-engine/internal/vec2"

// ContactKind names the shape pair (and detection mode) that produced a contact.
type ContactKind int

const (
	CircleCircle ContactKind = iota
	CircleSegment
	CircleRing
	CircleCircleSwept
)

// String returns the contact kind name used in logs and exported events.
func (k ContactKind) String() string {
	switch k {
	case CircleCircle:
		return "circle-circle"
	case CircleSegment:
		return "circle-segment"
	case CircleRing:
		return "circle-ring"
	case CircleCircleSwept:
		return "circle-circle-swept"
	}
	return "unknown"
}

// ContactDetail carries the extra data specific to one contact kind.
// It is one of RingHit or SweptHit, or nil when the kind has no extra data.
type ContactDetail interface {
	contactDetail()
}

// RingHit records which ring edge a circle hit.
type RingHit struct {
	Boundary RingBoundary
}

// SweptHit records the time of impact, in seconds from the start of the step.
type SweptHit struct {
	TimeOfImpact float64
}

func (RingHit) contactDetail()  {}
func (SweptHit) contactDetail() {}

// Contact describes one collision found during a step. Normal is a unit vector pointing from A to B.
// Penetration is the overlap depth, zero for a touching (swept) contact. Contacts live for one step.
type Contact struct {
	A, B        *Body
	Point       vec2.Vec
	Normal      vec2.Vec
	Penetration float64
	Kind        ContactKind
	Detail      ContactDetail
}

// Flip returns the same contact seen from B: bodies swapped and normal negated.
func (c Contact) Flip() Contact {
	c.A, c.B = c.B, c.A
	c.Normal = c.Normal.Neg()
	return c
}

// TimeOfImpact returns the swept time of impact, or false for discrete contacts.
func (c *Contact) TimeOfImpact() (float64, bool) {
	if h, ok := c.Detail.(SweptHit); ok {
		return h.TimeOfImpact, true
	}
	return 0, false
}

// Other returns the body in the contact that is not b.
func (c *Contact) Other(b *Body) *Body {
	if c.A == b {
		return c.B
	}
	return c.A
}
