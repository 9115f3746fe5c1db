package physics

import (
	"math"

	"physics-engine/internal/mathutil"
	"physics-engine/internal/vec2"
)

// RingBoundary says which edge of a ring a circle hit.
type RingBoundary int

const (
	Inner RingBoundary = iota
	Outer
)

// String returns "inner" or "outer".
func (r RingBoundary) String() string {
	if r == Inner {
		return "inner"
	}
	return "outer"
}

// Ring is an annulus between InnerRadius and OuterRadius with an optional angular gap.
// Angles are in degrees, measured from +X toward +Y. The gap spans [GapStart, GapStart+GapAngle]
// offset by Rotation, which advances by RotationSpeed degrees per second.
type Ring struct {
	InnerRadius   float64
	OuterRadius   float64
	GapAngle      float64
	GapStart      float64
	Rotation      float64
	RotationSpeed float64
}

// RingCollision is the result of testing a circle against a ring. Normal points from the circle
// toward the ring material.
type RingCollision struct {
	Boundary    RingBoundary
	Normal      vec2.Vec
	Penetration float64
	Point       vec2.Vec
}

// Kind returns KindRing.
func (r *Ring) Kind() ShapeKind {
	return KindRing
}

func (r *Ring) bounds(pos vec2.Vec) vec2.AABB {
	return vec2.Around(pos, r.OuterRadius)
}

func (r *Ring) advance(dt float64) {
	if r.RotationSpeed != 0 {
		r.Rotation = mathutil.WrapDegrees(r.Rotation + r.RotationSpeed*dt)
	}
}

// HasGap reports whether the ring has an opening.
func (r *Ring) HasGap() bool {
	return r.GapAngle > 0
}

// GapRange returns the current gap start and end angles in [0, 360). End may be smaller than start
// when the gap crosses 0 degrees.
func (r *Ring) GapRange() (start, end float64) {
	start = mathutil.WrapDegrees(r.GapStart + r.Rotation)
	end = mathutil.WrapDegrees(start + r.GapAngle)
	return start, end
}

// PointInGap reports whether p, seen from the ring centre, falls inside the gap.
func (r *Ring) PointInGap(center, p vec2.Vec) bool {
	if !r.HasGap() {
		return false
	}
	if r.GapAngle >= 360 {
		return true
	}
	rel := p.Sub(center)
	angle := mathutil.WrapDegrees(rel.Angle() * 180 / math.Pi)
	start, end := r.GapRange()
	if start <= end {
		return angle >= start && angle <= end
	}
	return angle >= start || angle <= end
}

// CollideCircle tests a circle at p against a ring centred on center. It reports no collision when the
// circle lies wholly inside the inner radius or wholly outside the outer radius, when its centre is in
// the gap, or when its centre coincides with the ring centre. Otherwise the circle is pushed toward the
// side of the band its centre is on: inward across the inner edge, or outward across the outer edge.
func (r *Ring) CollideCircle(center, p vec2.Vec, radius float64) (RingCollision, bool) {
	d := center.Dist(p)
	if d+radius <= r.InnerRadius || d-radius >= r.OuterRadius {
		return RingCollision{}, false
	}
	if r.PointInGap(center, p) || d == 0 {
		return RingCollision{}, false
	}
	dir := p.Sub(center).Scale(1 / d)
	if d-r.InnerRadius <= r.OuterRadius-d {
		return RingCollision{
			Boundary:    Inner,
			Normal:      dir,
			Penetration: d + radius - r.InnerRadius,
			Point:       center.Add(dir.Scale(r.InnerRadius)),
		}, true
	}
	return RingCollision{
		Boundary:    Outer,
		Normal:      dir.Neg(),
		Penetration: r.OuterRadius + radius - d,
		Point:       center.Add(dir.Scale(r.OuterRadius)),
	}, true
}
