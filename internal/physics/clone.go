package physics

import (
	"fmt"

	"github.com/jinzhu/copier"
	uuid "github.com/satori/go.uuid"
)

var deepCopy = copier.Option{DeepCopy: true}

func (c *Circle) clone() (Shape, error) {
	out := &Circle{}
	if err := copier.CopyWithOption(out, c, deepCopy); err != nil {
		return nil, fmt.Errorf("copy circle: %w", err)
	}
	return out, nil
}

func (s *Segment) clone() (Shape, error) {
	out := &Segment{}
	if err := copier.CopyWithOption(out, s, deepCopy); err != nil {
		return nil, fmt.Errorf("copy segment: %w", err)
	}
	return out, nil
}

func (r *Ring) clone() (Shape, error) {
	out := &Ring{}
	if err := copier.CopyWithOption(out, r, deepCopy); err != nil {
		return nil, fmt.Errorf("copy ring: %w", err)
	}
	return out, nil
}

// Clone returns an independent copy of b with a new ID. Shape state and tags are copied; the collision
// callback is shared and pending forces are dropped.
func (b *Body) Clone() (*Body, error) {
	shape, err := b.Shape.clone()
	if err != nil {
		return nil, fmt.Errorf("clone body %s: %w", b.id, err)
	}
	out := &Body{
		id:           uuid.Must(uuid.NewV4()),
		Position:     b.Position,
		Velocity:     b.Velocity,
		Acceleration: b.Acceleration,
		mass:         b.mass,
		invMass:      b.invMass,
		static:       b.static,
		Restitution:  b.Restitution,
		Friction:     b.Friction,
		Drag:         b.Drag,
		Shape:        shape,
		Tags:         make(map[string]struct{}, len(b.Tags)),
		OnCollision:  b.OnCollision,
		prevPosition: b.Position,
	}
	for t := range b.Tags {
		out.Tags[t] = struct{}{}
	}
	return out, nil
}
