package physics

import "physics-engine/internal/vec2"

// Sweep bounds the bisection search for a time of impact.
type Sweep struct {
	Iterations int
	Tolerance  float64
}

// DefaultSweep is 20 bisection steps with a distance tolerance of 1e-6.
var DefaultSweep = Sweep{Iterations: 20, Tolerance: 1e-6}

func (s Sweep) normalized() Sweep {
	if s.Iterations <= 0 {
		s.Iterations = DefaultSweep.Iterations
	}
	if s.Tolerance <= 0 {
		s.Tolerance = DefaultSweep.Tolerance
	}
	return s
}

// SweepCircles finds when two circles moving linearly over [0, dt] first touch.
// It reports false when they already overlap at t=0 (the discrete test owns that case) or do not
// overlap at t=dt. Otherwise the returned time lies in (0, dt).
func SweepCircles(pa, va vec2.Vec, ra float64, pb, vb vec2.Vec, rb float64, dt float64, s Sweep) (float64, bool) {
	if dt <= 0 {
		return 0, false
	}
	s = s.normalized()
	sum := ra + rb
	if pa.Dist(pb) < sum {
		return 0, false
	}
	at := func(t float64) float64 {
		return pa.Add(va.Scale(t)).Dist(pb.Add(vb.Scale(t))) - sum
	}
	if at(dt) >= 0 {
		return 0, false
	}
	lo, hi := 0.0, dt
	for i := 0; i < s.Iterations; i++ {
		mid := (lo + hi) / 2
		gap := at(mid)
		if gap > -s.Tolerance && gap < s.Tolerance {
			return mid, true
		}
		if gap > 0 {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < s.Tolerance {
			break
		}
	}
	return (lo + hi) / 2, true
}

// DetectSwept runs the swept circle-circle test for two circle bodies moving with their current
// velocities over dt. The contact has zero penetration and carries the time of impact.
func DetectSwept(a, b *Body, dt float64, s Sweep) (Contact, bool) {
	return sweep(a, b, a.Position, a.Velocity, b.Position, b.Velocity, dt, s)
}

func sweep(a, b *Body, pa, va, pb, vb vec2.Vec, dt float64, s Sweep) (Contact, bool) {
	ca, okA := a.Shape.(*Circle)
	cb, okB := b.Shape.(*Circle)
	if !okA || !okB {
		return Contact{}, false
	}
	t, ok := SweepCircles(pa, va, ca.Radius, pb, vb, cb.Radius, dt, s)
	if !ok {
		return Contact{}, false
	}
	posA := pa.Add(va.Scale(t))
	posB := pb.Add(vb.Scale(t))
	n := posB.Sub(posA).Normalize()
	if n.LenSq() == 0 {
		return Contact{}, false
	}
	return Contact{
		A:      a,
		B:      b,
		Point:  posA.Add(n.Scale(ca.Radius)),
		Normal: n,
		Kind:   CircleCircleSwept,
		Detail: SweptHit{TimeOfImpact: t},
	}, true
}
