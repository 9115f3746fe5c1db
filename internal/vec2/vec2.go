package vec2

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec is a 2D vector with float64 components. It is a plain value; every operation returns a new Vec.
// Arithmetic is delegated to mgl64.Vec2; the named fields keep call sites readable.
type Vec struct {
	X, Y float64
}

// FromMgl converts an mgl64 vector.
func FromMgl(m mgl64.Vec2) Vec {
	return Vec{m[0], m[1]}
}

// Mgl returns v as an mgl64 vector.
func (v Vec) Mgl() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

// Zero is the zero vector.
var Zero = Vec{}

// New returns the vector (x, y).
func New(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// FromAngle returns the unit vector pointing at angle a (radians).
func FromAngle(a float64) Vec {
	return Vec{math.Cos(a), math.Sin(a)}
}

// String formats v with two decimals.
func (v Vec) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return FromMgl(v.Mgl().Add(o.Mgl()))
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return FromMgl(v.Mgl().Sub(o.Mgl()))
}

// Scale multiplies both components by s.
func (v Vec) Scale(s float64) Vec {
	return FromMgl(v.Mgl().Mul(s))
}

// Div divides both components by s. Division by zero yields the zero vector.
func (v Vec) Div(s float64) Vec {
	if s == 0 {
		return Zero
	}
	return Vec{v.X / s, v.Y / s}
}

// Neg returns -v.
func (v Vec) Neg() Vec {
	return Vec{-v.X, -v.Y}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 {
	return v.Mgl().Dot(o.Mgl())
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec) Cross(o Vec) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Perp returns v rotated by +90 degrees.
func (v Vec) Perp() Vec {
	return Vec{-v.Y, v.X}
}

// Len returns the length of v.
func (v Vec) Len() float64 {
	return v.Mgl().Len()
}

// LenSq is the squared length; use it on hot paths to avoid the square root.
func (v Vec) LenSq() float64 {
	return v.Dot(v)
}

// Normalize returns the unit vector in the direction of v, or the zero vector when v has zero length.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return Vec{v.X / l, v.Y / l}
}

// Dist returns the distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// DistSq returns the squared distance between v and o.
func (v Vec) DistSq(o Vec) float64 {
	return v.Sub(o).LenSq()
}

// Angle returns the direction of v in radians, in (-pi, pi].
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleTo returns the direction from v to o in radians.
func (v Vec) AngleTo(o Vec) float64 {
	return o.Sub(v).Angle()
}

// Rotate rotates v counter-clockwise by a radians.
func (v Vec) Rotate(a float64) Vec {
	return FromMgl(mgl64.Rotate2D(a).Mul2x1(v.Mgl()))
}

// Reflect mirrors v about the unit normal n: v - 2(v.n)n.
func (v Vec) Reflect(n Vec) Vec {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Project returns the projection of v onto o. Projecting onto the zero vector yields the zero vector.
func (v Vec) Project(o Vec) Vec {
	d := o.LenSq()
	if d == 0 {
		return Zero
	}
	return o.Scale(v.Dot(o) / d)
}

// Lerp interpolates linearly from v (t=0) to o (t=1).
func (v Vec) Lerp(o Vec, t float64) Vec {
	return v.Add(o.Sub(v).Scale(t))
}

// ClampLen returns v shortened to at most max length.
func (v Vec) ClampLen(max float64) Vec {
	l := v.LenSq()
	if l <= max*max {
		return v
	}
	return v.Scale(max / math.Sqrt(l))
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Equal reports whether v and o differ by at most eps on each axis. Unlike ApproxEqual the
// tolerance is absolute.
func (v Vec) Equal(o Vec, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// ApproxEqual reports whether v and o are equal within the relative tolerance used by mgl64.
func (v Vec) ApproxEqual(o Vec, eps float64) bool {
	return v.Mgl().ApproxEqualThreshold(o.Mgl(), eps)
}
