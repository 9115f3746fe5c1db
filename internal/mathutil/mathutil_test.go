package mathutil

import (
	"math"
	"math/rand"
	"testing"

	"physics-engine/internal/vec2"
)

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5,0,3) = %v", got)
	}
	if got := Clamp(-1.5, 0.0, 3.0); got != 0 {
		t.Errorf("Clamp(-1.5,0,3) = %v", got)
	}
	if got := Clamp(float32(1), 0, 3); got != 1 {
		t.Errorf("Clamp(1,0,3) = %v", got)
	}
}

func TestScalarHelpers(t *testing.T) {
	if got := Lerp(0.0, 10.0, 0.25); got != 2.5 {
		t.Errorf("Lerp = %v", got)
	}
	if got := MapRange(5.0, 0, 10, 100, 200); got != 150 {
		t.Errorf("MapRange = %v", got)
	}
	if got := MapRange(5.0, 1, 1, 7, 9); got != 7 {
		t.Errorf("MapRange over empty range = %v", got)
	}
	if got := SmoothStep(0.0, 1.0, 0.5); got != 0.5 {
		t.Errorf("SmoothStep mid = %v", got)
	}
	if got := SmoothStep(0.0, 1.0, 2); got != 1 {
		t.Errorf("SmoothStep above = %v", got)
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{370, 10},
		{-10, 350},
		{-720, 0},
	}
	for _, tt := range tests {
		if got := WrapDegrees(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRandomVecMagnitude(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		l := RandomVec(rng, 2, 5).Len()
		if l < 2-1e-9 || l >= 5 {
			t.Fatalf("RandomVec magnitude %v outside [2,5)", l)
		}
	}
}

func TestClosestOnSegment(t *testing.T) {
	a, b := vec2.New(0, 0), vec2.New(10, 0)
	tests := []struct {
		p, want vec2.Vec
	}{
		{vec2.New(5, 3), vec2.New(5, 0)},
		{vec2.New(-4, 1), a},
		{vec2.New(14, -1), b},
	}
	for _, tt := range tests {
		if got := ClosestOnSegment(tt.p, a, b); !got.Equal(tt.want, 1e-9) {
			t.Errorf("ClosestOnSegment(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if got := ClosestOnSegment(vec2.New(3, 3), a, a); got != a {
		t.Errorf("zero-length segment = %v", got)
	}
	if d := DistanceToSegment(vec2.New(5, 3), a, b); d != 3 {
		t.Errorf("DistanceToSegment = %v", d)
	}
}
