package mathutil

import (
	"math"
	"math/rand"

	"golang.org/x/exp/constraints"

	"physics-engine/internal/vec2"
)

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a (t=0) and b (t=1).
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// MapRange maps v from [inMin, inMax] to [outMin, outMax]. A zero-width input range maps to outMin.
func MapRange[T constraints.Float](v, inMin, inMax, outMin, outMax T) T {
	if inMax == inMin {
		return outMin
	}
	return outMin + (outMax-outMin)*((v-inMin)/(inMax-inMin))
}

// SmoothStep is the cubic Hermite step between edge0 and edge1.
func SmoothStep[T constraints.Float](edge0, edge1, x T) T {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// WrapDegrees normalizes an angle in degrees to [0, 360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// RandomVec returns a vector with uniformly random direction and magnitude in [minMag, maxMag).
func RandomVec(rng *rand.Rand, minMag, maxMag float64) vec2.Vec {
	angle := rng.Float64() * 2 * math.Pi
	mag := minMag + rng.Float64()*(maxMag-minMag)
	return vec2.FromAngle(angle).Scale(mag)
}

// ClosestOnSegment returns the point of segment [a, b] closest to p. A zero-length segment yields a.
func ClosestOnSegment(p, a, b vec2.Vec) vec2.Vec {
	ab := b.Sub(a)
	d := ab.LenSq()
	if d == 0 {
		return a
	}
	t := Clamp(p.Sub(a).Dot(ab)/d, 0, 1)
	return a.Add(ab.Scale(t))
}

// DistanceToSegment is the distance from p to segment [a, b].
func DistanceToSegment(p, a, b vec2.Vec) float64 {
	return p.Dist(ClosestOnSegment(p, a, b))
}
