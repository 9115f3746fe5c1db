package physics

// Detect runs the exact narrow-phase test for a and b. The result does not depend on argument
// order beyond orientation: Detect(b, a) returns the same contact with A and B swapped and the
// normal negated. Shape pairs without a test (segment-segment, ring-ring, segment-ring) never collide.
func Detect(a, b *Body) (Contact, bool) {
	switch ka, kb := a.Kind(), b.Kind(); {
	case ka == KindCircle && kb == KindCircle:
		return circleCircle(a, b)
	case ka == KindCircle && kb == KindSegment:
		return circleSegment(a, b)
	case ka == KindSegment && kb == KindCircle:
		c, ok := circleSegment(b, a)
		return c.Flip(), ok
	case ka == KindCircle && kb == KindRing:
		return circleRing(a, b)
	case ka == KindRing && kb == KindCircle:
		c, ok := circleRing(b, a)
		return c.Flip(), ok
	}
	return Contact{}, false
}

// DetectAll is the O(n²) reference pass used when broad-phase optimization is disabled.
// Pairs of static bodies are skipped.
func DetectAll(bodies []*Body) []Contact {
	var out []Contact
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.static && b.static {
				continue
			}
			if c, ok := Detect(a, b); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

func circleCircle(a, b *Body) (Contact, bool) {
	ca, cb := a.Shape.(*Circle), b.Shape.(*Circle)
	delta := b.Position.Sub(a.Position)
	d := delta.Len()
	sum := ca.Radius + cb.Radius
	// Coincident centres have no usable normal.
	if d >= sum || d == 0 {
		return Contact{}, false
	}
	n := delta.Scale(1 / d)
	return Contact{
		A:           a,
		B:           b,
		Point:       a.Position.Add(n.Scale(ca.Radius)),
		Normal:      n,
		Penetration: sum - d,
		Kind:        CircleCircle,
	}, true
}

// circleSegment tests circle body c against segment body s. The contact normal points from the
// circle toward the segment, so it is the reverse of the segment's outward normal at the contact.
func circleSegment(c, s *Body) (Contact, bool) {
	circle, seg := c.Shape.(*Circle), s.Shape.(*Segment)
	closest := seg.ClosestPoint(s.Position, c.Position)
	away := c.Position.Sub(closest)
	d := away.Len()
	reach := circle.Radius + seg.Thickness/2
	if d >= reach {
		return Contact{}, false
	}
	var outward = seg.Normal()
	if d > 0 {
		outward = away.Scale(1 / d)
	}
	if outward.LenSq() == 0 {
		// Centre on a zero-length segment: no direction to separate along.
		return Contact{}, false
	}
	return Contact{
		A:           c,
		B:           s,
		Point:       closest,
		Normal:      outward.Neg(),
		Penetration: reach - d,
		Kind:        CircleSegment,
	}, true
}

func circleRing(c, r *Body) (Contact, bool) {
	circle := c.Shape.(*Circle)
	hit, ok := r.Shape.(*Ring).CollideCircle(r.Position, c.Position, circle.Radius)
	if !ok {
		return Contact{}, false
	}
	return Contact{
		A:           c,
		B:           r,
		Point:       hit.Point,
		Normal:      hit.Normal,
		Penetration: hit.Penetration,
		Kind:        CircleRing,
		Detail:      RingHit{Boundary: hit.Boundary},
	}, true
}
