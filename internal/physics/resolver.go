package physics

import (
	"math"

	"physics-engine/internal/vec2"
)

// Resolver turns contacts into position and velocity changes. Contacts are resolved one at a time in
// the order given; resolving one contact may change the state a later contact was computed from.
type Resolver struct {
	// PositionCorrection enables pushing overlapping bodies apart.
	PositionCorrection bool
	// CorrectionFactor is the share of the penetration removed per step, below 1 to avoid jitter.
	CorrectionFactor float64
	// VelocityThreshold is the tangential speed under which friction is skipped.
	VelocityThreshold float64
}

// NewResolver returns a resolver with position correction on, a 0.8 correction factor and a
// 0.01 friction threshold.
func NewResolver() *Resolver {
	return &Resolver{
		PositionCorrection: true,
		CorrectionFactor:   0.8,
		VelocityThreshold:  0.01,
	}
}

// Resolve resolves every contact in order.
func (r *Resolver) Resolve(contacts []Contact) {
	for i := range contacts {
		r.ResolveContact(&contacts[i])
	}
}

// ResolveContact separates the bodies, applies the normal and friction impulses, then calls the
// collision callbacks of A and B.
func (r *Resolver) ResolveContact(c *Contact) {
	a, b := c.A, c.B
	if r.PositionCorrection && c.Penetration > 0 {
		r.correctPosition(a, b, c.Normal, c.Penetration)
	}
	r.resolveVelocity(a, b, c.Normal)
	if a.OnCollision != nil {
		a.OnCollision(a, b, c)
	}
	if b.OnCollision != nil {
		b.OnCollision(b, a, c)
	}
}

func (r *Resolver) correctPosition(a, b *Body, n vec2.Vec, penetration float64) {
	total := a.invMass + b.invMass
	if total <= 0 {
		return
	}
	correction := n.Scale(penetration * r.CorrectionFactor / total)
	if a.invMass > 0 {
		a.Position = a.Position.Sub(correction.Scale(a.invMass))
	}
	if b.invMass > 0 {
		b.Position = b.Position.Add(correction.Scale(b.invMass))
	}
}

func (r *Resolver) resolveVelocity(a, b *Body, n vec2.Vec) {
	total := a.invMass + b.invMass
	if total <= 0 {
		return
	}
	rel := b.Velocity.Sub(a.Velocity)
	along := rel.Dot(n)
	// Already separating.
	if along > 0 {
		return
	}
	e := math.Min(a.Restitution, b.Restitution)
	j := -(1 + e) * along / total
	applyImpulse(a, b, n.Scale(j))
	r.applyFriction(a, b, n, j)
}

func (r *Resolver) applyFriction(a, b *Body, n vec2.Vec, j float64) {
	rel := b.Velocity.Sub(a.Velocity)
	tangent := rel.Sub(n.Scale(rel.Dot(n)))
	if tangent.Len() < r.VelocityThreshold {
		return
	}
	t := tangent.Normalize()
	jt := -rel.Dot(t) / (a.invMass + b.invMass)
	mu := math.Sqrt(a.Friction * b.Friction)
	var impulse vec2.Vec
	if math.Abs(jt) < j*mu {
		impulse = t.Scale(jt)
	} else {
		impulse = t.Scale(-j * mu)
	}
	applyImpulse(a, b, impulse)
}

// applyImpulse adds -impulse to a and +impulse to b, weighted by inverse mass.
func applyImpulse(a, b *Body, impulse vec2.Vec) {
	if a.invMass > 0 {
		a.Velocity = a.Velocity.Sub(impulse.Scale(a.invMass))
	}
	if b.invMass > 0 {
		b.Velocity = b.Velocity.Add(impulse.Scale(b.invMass))
	}
}
