// Package effects holds the per-frame visual state drawn on top of the simulation: motion trails
// behind moving bodies and phases that cycle colours and segment flow markers. It has no drawing
// code so it can be used and tested without a window.
package effects

import (
	uuid "github.com/satori/go.uuid"

	"physics-engine/internal/mathutil"
	"physics-engine/internal/physics"
	"physics-engine/internal/vec2"
)

// DefaultTrailLength is the number of positions kept per body.
const DefaultTrailLength = 20

// Trail is a bounded history of positions, oldest first.
type Trail struct {
	points []vec2.Vec
	max    int
}

// NewTrail returns an empty trail keeping at most n points (DefaultTrailLength when n < 2).
func NewTrail(n int) *Trail {
	if n < 2 {
		n = DefaultTrailLength
	}
	return &Trail{points: make([]vec2.Vec, 0, n), max: n}
}

// Push appends p and drops the oldest point once the trail is full.
func (t *Trail) Push(p vec2.Vec) {
	if !p.IsFinite() {
		return
	}
	if len(t.points) == t.max {
		copy(t.points, t.points[1:])
		t.points = t.points[:t.max-1]
	}
	t.points = append(t.points, p)
}

// Points returns the stored positions, oldest first. The slice is reused by the next Push.
func (t *Trail) Points() []vec2.Vec {
	return t.points
}

// Alpha returns the opacity of the piece ending at point i: the newest piece is opaque and older
// pieces fade towards zero.
func (t *Trail) Alpha(i int) float64 {
	if len(t.points) == 0 {
		return 0
	}
	return mathutil.Clamp(float64(i)/float64(len(t.points)-1), 0, 1)
}

// Trails keeps one Trail per moving body.
type Trails struct {
	length int
	byID   map[uuid.UUID]*Trail
}

// NewTrails returns an empty set of trails of the given length.
func NewTrails(length int) *Trails {
	return &Trails{length: length, byID: make(map[uuid.UUID]*Trail)}
}

// Update records the position of every dynamic circle and forgets bodies no longer in bodies.
func (ts *Trails) Update(bodies []*physics.Body) {
	live := make(map[uuid.UUID]struct{}, len(bodies))
	for _, b := range bodies {
		if b.Static() || b.Kind() != physics.KindCircle {
			continue
		}
		live[b.ID()] = struct{}{}
		t, ok := ts.byID[b.ID()]
		if !ok {
			t = NewTrail(ts.length)
			ts.byID[b.ID()] = t
		}
		t.Push(b.Position)
	}
	for id := range ts.byID {
		if _, ok := live[id]; !ok {
			delete(ts.byID, id)
		}
	}
}

// Get returns the trail of the body with the given id.
func (ts *Trails) Get(id uuid.UUID) (*Trail, bool) {
	t, ok := ts.byID[id]
	return t, ok
}

// Len returns the number of tracked bodies.
func (ts *Trails) Len() int {
	return len(ts.byID)
}

// Reset forgets every trail.
func (ts *Trails) Reset() {
	clear(ts.byID)
}

// Phase is an angle in degrees advancing at Speed degrees per second, wrapped to [0, 360).
type Phase struct {
	Value float64
	Speed float64
}

// Advance moves the phase forward by dt seconds.
func (p *Phase) Advance(dt float64) {
	p.Value = mathutil.WrapDegrees(p.Value + p.Speed*dt)
}

// Hue shifts base by the phase, wrapped to [0, 360).
func (p Phase) Hue(base float64) float64 {
	return mathutil.WrapDegrees(base + p.Value)
}

// Offset maps the phase to a distance in [0, spacing) for markers repeating every spacing units.
func (p Phase) Offset(spacing float64) float64 {
	if spacing <= 0 {
		return 0
	}
	return p.Value / 360 * spacing
}

// FlowMarkers returns the positions of markers spaced every spacing units along the segment from
// start to end, shifted by offset.
func FlowMarkers(start, end vec2.Vec, spacing, offset float64) []vec2.Vec {
	length := start.Dist(end)
	if length == 0 || spacing <= 0 {
		return nil
	}
	dir := end.Sub(start).Div(length)
	var out []vec2.Vec
	for d := offset; d <= length; d += spacing {
		out = append(out, start.Add(dir.Scale(d)))
	}
	return out
}
