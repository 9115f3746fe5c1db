package render

import (
	"image/color"
	"math"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-engine/internal/effects"
	"physics-engine/internal/events"
	"physics-engine/internal/physics"
	"physics-engine/internal/vec2"
)

const (
	ringSegments  = 96
	flashLifetime = 0.4 // seconds
	flashRadius   = 18
	gridMajorStep = 5
	gridMinorA    = 25
	gridMajorA    = 60

	ringHue       = 210
	ringHueSpeed  = 25 // degrees per second
	flowSpacing   = 24
	flowSpeed     = 180
	trailMaxWidth = 3
)

var (
	background = rl.NewColor(18, 18, 24, 255)
	wallColor  = rl.NewColor(200, 200, 210, 255)
	boxColor   = rl.NewColor(0, 228, 48, 128)
	flashColor = rl.NewColor(255, 240, 120, 255)
)

type flash struct {
	pos vec2.Vec
	age float32
}

// Renderer draws a physics world in world coordinates through a 2D camera. Overlays (bounding boxes,
// broad-phase grid) are off by default; contact flashes and motion trails are on.
type Renderer struct {
	Camera       rl.Camera2D
	ShowBoxes    bool
	ShowGrid     bool
	ShowContacts bool
	ShowTrails   bool

	flashes []flash
	trails  *effects.Trails
	hue     effects.Phase
	flow    effects.Phase
}

// New returns a renderer with a camera that shows world units as pixels.
func New() *Renderer {
	return &Renderer{
		Camera:       rl.Camera2D{Zoom: 1},
		ShowContacts: true,
		ShowTrails:   true,
		trails:       effects.NewTrails(effects.DefaultTrailLength),
		hue:          effects.Phase{Speed: ringHueSpeed},
		flow:         effects.Phase{Speed: flowSpeed},
	}
}

// Fit scales and centres the camera so a worldW x worldH area fills the screen.
func (r *Renderer) Fit(screenW, screenH int, worldW, worldH float64) {
	zoom := math32.Min(float32(screenW)/float32(worldW), float32(screenH)/float32(worldH))
	r.Camera.Zoom = zoom
	r.Camera.Target = rl.NewVector2(float32(worldW)/2, float32(worldH)/2)
	r.Camera.Offset = rl.NewVector2(float32(screenW)/2, float32(screenH)/2)
}

// AddEvents queues a flash at every event position.
func (r *Renderer) AddEvents(evs []events.Event) {
	for _, e := range evs {
		r.flashes = append(r.flashes, flash{pos: vec2.New(e.Position.X, e.Position.Y)})
	}
}

// Update records trail points for the bodies of w, advances the colour and flow phases and ages
// contact flashes.
func (r *Renderer) Update(w *physics.World, dt float32) {
	r.trails.Update(w.Bodies())
	r.hue.Advance(float64(dt))
	r.flow.Advance(float64(dt))

	kept := r.flashes[:0]
	for _, f := range r.flashes {
		f.age += dt
		if f.age < flashLifetime {
			kept = append(kept, f)
		}
	}
	r.flashes = kept
}

// Draw clears the screen and renders w. cellSize sizes the broad-phase grid overlay.
func (r *Renderer) Draw(w *physics.World, cellSize float64) {
	rl.ClearBackground(background)
	rl.BeginMode2D(r.Camera)
	if r.ShowGrid {
		drawCellGrid(w, cellSize)
	}
	if r.ShowTrails {
		for _, b := range w.Bodies() {
			if t, ok := r.trails.Get(b.ID()); ok {
				drawTrail(t, bodyColor(b))
			}
		}
	}
	ringCol := rl.ColorFromHSV(float32(r.hue.Hue(ringHue)), 0.65, 1)
	flowOffset := r.flow.Offset(flowSpacing)
	for _, b := range w.Bodies() {
		drawBody(b, ringCol, flowOffset)
		if r.ShowBoxes {
			box := b.AABB()
			rl.DrawRectangleLinesEx(rl.NewRectangle(float32(box.Min.X), float32(box.Min.Y), float32(box.Width()), float32(box.Height())), 1, boxColor)
		}
	}
	if r.ShowContacts {
		for _, f := range r.flashes {
			fade := 1 - f.age/flashLifetime
			rl.DrawCircleLinesV(vec(f.pos), flashRadius*(2-fade), rl.Fade(flashColor, fade))
		}
	}
	rl.EndMode2D()
}

func vec(v vec2.Vec) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

// bodyColor picks a stable hue from the body's ID.
func bodyColor(b *physics.Body) color.RGBA {
	id := b.ID()
	hue := float32(uint16(id[0])<<8|uint16(id[1])) / math.MaxUint16 * 360
	return rl.ColorFromHSV(hue, 0.65, 0.95)
}

func drawBody(b *physics.Body, ringCol color.RGBA, flowOffset float64) {
	switch b.Kind() {
	case physics.KindCircle:
		c, _ := b.Circle()
		drawCircle(b.Position, c, bodyColor(b))
	case physics.KindSegment:
		s, _ := b.Segment()
		start, end := s.Endpoints(b.Position)
		thick := float32(math.Max(s.Thickness, 1))
		rl.DrawLineEx(vec(start), vec(end), thick, wallColor)
		rl.DrawCircleV(vec(start), thick/2, wallColor)
		rl.DrawCircleV(vec(end), thick/2, wallColor)
		for _, m := range effects.FlowMarkers(start, end, flowSpacing, flowOffset) {
			rl.DrawCircleV(vec(m), thick/3, rl.Fade(background, 0.6))
		}
	case physics.KindRing:
		ring, _ := b.Ring()
		drawRing(b.Position, ring, ringCol)
	}
}

func drawCircle(pos vec2.Vec, c *physics.Circle, col color.RGBA) {
	center := vec(pos)
	radius := float32(c.Radius)
	rl.DrawCircleV(center, radius, col)
	sin, cos := math32.Sincos(float32(c.Rotation))
	tip := rl.NewVector2(center.X+cos*radius, center.Y+sin*radius)
	rl.DrawLineEx(center, tip, math32.Max(1, radius/6), rl.Fade(rl.Black, 0.5))
}

// drawRing draws the solid part of the ring, from the end of the gap round to its start.
func drawRing(pos vec2.Vec, r *physics.Ring, ringColor color.RGBA) {
	inner, outer := float32(r.InnerRadius), float32(r.OuterRadius)
	if !r.HasGap() {
		rl.DrawRing(vec(pos), inner, outer, 0, 360, ringSegments, ringColor)
		return
	}
	if r.GapAngle >= 360 {
		return
	}
	start, end := r.GapRange()
	from, to := float32(end), float32(start)
	if to <= from {
		to += 360
	}
	rl.DrawRing(vec(pos), inner, outer, from, to, ringSegments, ringColor)
}

// drawTrail draws a fading polyline through the trail points, thinner towards the oldest point.
func drawTrail(t *effects.Trail, col color.RGBA) {
	pts := t.Points()
	for i := 1; i < len(pts); i++ {
		alpha := float32(t.Alpha(i))
		rl.DrawLineEx(vec(pts[i-1]), vec(pts[i]), math32.Max(1, alpha*trailMaxWidth), rl.Fade(col, alpha))
	}
}

// drawCellGrid draws the broad-phase cells over the area covered by the world's bodies, with a
// brighter line every gridMajorStep cells.
func drawCellGrid(w *physics.World, cellSize float64) {
	bodies := w.Bodies()
	if len(bodies) == 0 || cellSize <= 0 {
		return
	}
	area := bodies[0].AABB()
	for _, b := range bodies[1:] {
		area = area.Union(b.AABB())
	}
	if !area.Min.IsFinite() || !area.Max.IsFinite() {
		return
	}
	minor := rl.Fade(rl.Gray, gridMinorA/255.0)
	major := rl.Fade(rl.Gray, gridMajorA/255.0)
	c0, c1 := int(math.Floor(area.Min.X/cellSize)), int(math.Ceil(area.Max.X/cellSize))
	r0, r1 := int(math.Floor(area.Min.Y/cellSize)), int(math.Ceil(area.Max.Y/cellSize))
	top, bottom := float32(float64(r0)*cellSize), float32(float64(r1)*cellSize)
	left, right := float32(float64(c0)*cellSize), float32(float64(c1)*cellSize)
	for col := c0; col <= c1; col++ {
		x := float32(float64(col) * cellSize)
		c := minor
		if col%gridMajorStep == 0 {
			c = major
		}
		rl.DrawLineV(rl.NewVector2(x, top), rl.NewVector2(x, bottom), c)
	}
	for row := r0; row <= r1; row++ {
		y := float32(float64(row) * cellSize)
		c := minor
		if row%gridMajorStep == 0 {
			c = major
		}
		rl.DrawLineV(rl.NewVector2(left, y), rl.NewVector2(right, y), c)
	}
}
