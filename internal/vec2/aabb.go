package vec2

import "math"

// AABB is an axis-aligned bounding box. Min holds the smallest coordinates, Max the largest.
type AABB struct {
	Min, Max Vec
}

// Box returns the AABB spanning the two corners in any order.
func Box(a, b Vec) AABB {
	return AABB{
		Min: Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// Around returns the square box of half size r centred on c.
func Around(c Vec, r float64) AABB {
	return AABB{Min: Vec{c.X - r, c.Y - r}, Max: Vec{c.X + r, c.Y + r}}
}

// Overlaps reports whether the two boxes intersect. Touching edges count as overlap.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

// Contains reports whether p lies inside b, edges included.
func (b AABB) Contains(p Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Union returns the smallest box containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Vec{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Expand grows the box by r on every side.
func (b AABB) Expand(r float64) AABB {
	return AABB{Min: Vec{b.Min.X - r, b.Min.Y - r}, Max: Vec{b.Max.X + r, b.Max.Y + r}}
}

// Translate moves the box by d.
func (b AABB) Translate(d Vec) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Center returns the midpoint of b.
func (b AABB) Center() Vec {
	return b.Min.Lerp(b.Max, 0.5)
}

// Width returns the extent of b on the x axis.
func (b AABB) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the extent of b on the y axis.
func (b AABB) Height() float64 {
	return b.Max.Y - b.Min.Y
}
