package scene

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"physics-engine/internal/engineconfig"
	"physics-engine/internal/mathutil"
	"physics-engine/internal/physics"
	"physics-engine/internal/vec2"
)

// Preset names a starting layout.
type Preset string

const (
	Rings  Preset = "rings"
	Funnel Preset = "funnel"
	Random Preset = "random"
)

type builder func(cfg engineconfig.Config, rng *rand.Rand) []*physics.Body

var presets = map[Preset]builder{
	Rings:  buildRings,
	Funnel: buildFunnel,
	Random: buildRandom,
}

// ParsePreset accepts one of the preset names.
func ParsePreset(s string) (Preset, error) {
	if _, ok := presets[Preset(s)]; !ok {
		return "", fmt.Errorf("unknown preset %q (want one of %v)", s, PresetNames())
	}
	return Preset(s), nil
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	out := make([]string, 0, len(presets))
	for p := range presets {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}

func center(cfg engineconfig.Config) vec2.Vec {
	return vec2.New(float64(cfg.Width)/2, float64(cfg.Height)/2)
}

func ball(pos vec2.Vec, radius float64, rng *rand.Rand) *physics.Body {
	b := physics.NewCircle(pos, radius, radius*radius/100, false)
	b.Velocity = mathutil.RandomVec(rng, 100, 400)
	b.AddTag(TagBall)
	c, _ := b.Circle()
	c.AngularVelocity = rng.Float64()*4 - 2
	return b
}

// walls encloses the window with four static segments.
func walls(cfg engineconfig.Config) []*physics.Body {
	w, h := float64(cfg.Width), float64(cfg.Height)
	corners := []vec2.Vec{vec2.New(0, 0), vec2.New(w, 0), vec2.New(w, h), vec2.New(0, h)}
	out := make([]*physics.Body, 0, 4)
	for i, c := range corners {
		s := physics.NewSegment(c, corners[(i+1)%4], 10, true)
		s.AddTag(TagWall)
		out = append(out, s)
	}
	return out
}

// buildRings nests rotating rings with gaps around the centre and drops balls inside the innermost one.
func buildRings(cfg engineconfig.Config, rng *rand.Rand) []*physics.Body {
	c := center(cfg)
	maxR := math.Min(float64(cfg.Width), float64(cfg.Height)) * 0.45
	var out []*physics.Body
	const rings = 4
	for i := 0; i < rings; i++ {
		outer := maxR * (1 - float64(i)*0.18)
		r := physics.NewRing(c, outer-12, outer, 40+float64(i)*5, rng.Float64()*360, true)
		ring, _ := r.Ring()
		ring.RotationSpeed = 30 + float64(i)*15
		if i%2 == 1 {
			ring.RotationSpeed = -ring.RotationSpeed
		}
		r.AddTag(TagRing)
		out = append(out, r)
	}
	inner := maxR*(1-float64(rings-1)*0.18) - 12
	for i := 0; i < 6; i++ {
		pos := c.Add(mathutil.RandomVec(rng, 0, inner*0.5))
		b := ball(pos, 12+rng.Float64()*8, rng)
		if i%3 == 0 {
			circle, _ := b.Circle()
			circle.Pulse = physics.Pulse{Enabled: true, Speed: 4, Amplitude: 0.15}
		}
		out = append(out, b)
	}
	return out
}

// buildFunnel angles two segments toward a narrow opening above a floor and drops balls from the top.
func buildFunnel(cfg engineconfig.Config, rng *rand.Rand) []*physics.Body {
	w, h := float64(cfg.Width), float64(cfg.Height)
	out := walls(cfg)
	gap := w * 0.08
	left := physics.NewSegment(vec2.New(w*0.1, h*0.35), vec2.New(w/2-gap, h*0.6), 8, true)
	right := physics.NewSegment(vec2.New(w*0.9, h*0.35), vec2.New(w/2+gap, h*0.6), 8, true)
	left.AddTag(TagWall)
	right.AddTag(TagWall)
	out = append(out, left, right)
	for i := 0; i < 40; i++ {
		pos := vec2.New(mathutil.Lerp(w*0.15, w*0.85, rng.Float64()), mathutil.Lerp(h*0.05, h*0.3, rng.Float64()))
		out = append(out, ball(pos, 10+rng.Float64()*10, rng))
	}
	return out
}

// buildRandom scatters balls of mixed sizes inside the walls.
func buildRandom(cfg engineconfig.Config, rng *rand.Rand) []*physics.Body {
	w, h := float64(cfg.Width), float64(cfg.Height)
	out := walls(cfg)
	for i := 0; i < 150; i++ {
		r := 5 + rng.Float64()*20
		pos := vec2.New(mathutil.Lerp(r+10, w-r-10, rng.Float64()), mathutil.Lerp(r+10, h-r-10, rng.Float64()))
		out = append(out, ball(pos, r, rng))
	}
	return out
}
