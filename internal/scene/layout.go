package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"physics-engine/internal/engineconfig"
	"physics-engine/internal/physics"
	"physics-engine/internal/vec2"
)

// BodyDef is the YAML definition of one body in a layout file. Which fields apply depends on Type:
// circle uses position and radius, segment uses start, end and thickness, ring uses position and the
// ring fields.
type BodyDef struct {
	Type     string     `yaml:"type"`
	Position [2]float64 `yaml:"position,omitempty"`
	Velocity [2]float64 `yaml:"velocity,omitempty"`
	Mass     float64    `yaml:"mass,omitempty"`
	Static   bool       `yaml:"static,omitempty"`

	Radius float64 `yaml:"radius,omitempty"`

	Start     [2]float64 `yaml:"start,omitempty"`
	End       [2]float64 `yaml:"end,omitempty"`
	Thickness float64    `yaml:"thickness,omitempty"`

	Inner         float64 `yaml:"inner,omitempty"`
	Outer         float64 `yaml:"outer,omitempty"`
	GapAngle      float64 `yaml:"gap_angle,omitempty"`
	GapStart      float64 `yaml:"gap_start,omitempty"`
	RotationSpeed float64 `yaml:"rotation_speed,omitempty"`

	Restitution *float64 `yaml:"restitution,omitempty"`
	Friction    *float64 `yaml:"friction,omitempty"`
	Drag        *float64 `yaml:"drag,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// Layout is a hand-written scene.
type Layout struct {
	Name   string    `yaml:"name"`
	Bodies []BodyDef `yaml:"bodies"`
}

// LoadLayout reads a layout file.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if l.Name == "" {
		l.Name = "layout"
	}
	return l, nil
}

func pt(p [2]float64) vec2.Vec {
	return vec2.New(p[0], p[1])
}

// Build creates the bodies of l in order.
func (l Layout) Build(cfg engineconfig.Config) ([]*physics.Body, error) {
	out := make([]*physics.Body, 0, len(l.Bodies))
	for i, d := range l.Bodies {
		b, err := d.build()
		if err != nil {
			return nil, fmt.Errorf("layout %s body %d: %w", l.Name, i, err)
		}
		b.Restitution = cfg.Restitution
		b.Friction = cfg.Friction
		if d.Restitution != nil {
			b.Restitution = *d.Restitution
		}
		if d.Friction != nil {
			b.Friction = *d.Friction
		}
		if d.Drag != nil {
			b.Drag = *d.Drag
		}
		b.Velocity = pt(d.Velocity)
		for _, t := range d.Tags {
			b.AddTag(t)
		}
		out = append(out, b)
	}
	return out, nil
}

func (d BodyDef) build() (*physics.Body, error) {
	switch d.Type {
	case "circle":
		if d.Radius <= 0 {
			return nil, fmt.Errorf("circle radius %v must be positive", d.Radius)
		}
		return physics.NewCircle(pt(d.Position), d.Radius, d.Mass, d.Static), nil
	case "segment":
		if d.Thickness < 0 {
			return nil, fmt.Errorf("segment thickness %v must not be negative", d.Thickness)
		}
		return physics.NewSegment(pt(d.Start), pt(d.End), d.Thickness, d.Static), nil
	case "ring":
		if d.Inner <= 0 || d.Outer <= d.Inner {
			return nil, fmt.Errorf("ring radii %v..%v invalid", d.Inner, d.Outer)
		}
		b := physics.NewRing(pt(d.Position), d.Inner, d.Outer, d.GapAngle, d.GapStart, d.Static)
		r, _ := b.Ring()
		r.RotationSpeed = d.RotationSpeed
		return b, nil
	}
	return nil, fmt.Errorf("unknown body type %q", d.Type)
}
