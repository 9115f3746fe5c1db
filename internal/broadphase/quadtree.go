package broadphase

import "physics-engine/internal/vec2"

// Quadrant indices, in screen coordinates (Y grows downward).
const (
	quadNE = iota
	quadNW
	quadSW
	quadSE
)

// QuadTree is an adaptive partition. A node holds up to maxObjects entries; past that, and while its
// level is below maxLevels, it splits into four quadrants and pushes down every entry that fits entirely
// inside one of them. Entries straddling a split line stay at the parent, so no entry is stored twice.
type QuadTree[T Item] struct {
	bounds     vec2.AABB
	maxObjects int
	maxLevels  int
	level      int
	objects    []entry[T]
	nodes      []*QuadTree[T]
	seen       pairSet
	scratch    []T
}

// NewQuadTree returns an empty root covering bounds. Non-positive limits fall back to 10 objects and 5 levels.
func NewQuadTree[T Item](bounds vec2.AABB, maxObjects, maxLevels int) *QuadTree[T] {
	if maxObjects <= 0 {
		maxObjects = 10
	}
	if maxLevels <= 0 {
		maxLevels = 5
	}
	return &QuadTree[T]{
		bounds:     bounds,
		maxObjects: maxObjects,
		maxLevels:  maxLevels,
		seen:       make(pairSet),
	}
}

func (q *QuadTree[T]) child(bounds vec2.AABB) *QuadTree[T] {
	return &QuadTree[T]{
		bounds:     bounds,
		maxObjects: q.maxObjects,
		maxLevels:  q.maxLevels,
		level:      q.level + 1,
	}
}

// Clear removes every entry and collapses the tree back to its root.
func (q *QuadTree[T]) Clear() {
	q.objects = q.objects[:0]
	for _, n := range q.nodes {
		n.Clear()
	}
	q.nodes = nil
}

// Reset clears the tree and moves its root to bounds.
func (q *QuadTree[T]) Reset(bounds vec2.AABB) {
	q.Clear()
	q.bounds = bounds
}

// Bounds returns the region covered by the root node.
func (q *QuadTree[T]) Bounds() vec2.AABB {
	return q.bounds
}

func (q *QuadTree[T]) split() {
	min := q.bounds.Min
	mid := q.bounds.Center()
	max := q.bounds.Max
	q.nodes = make([]*QuadTree[T], 4)
	q.nodes[quadNE] = q.child(vec2.AABB{Min: vec2.New(mid.X, min.Y), Max: vec2.New(max.X, mid.Y)})
	q.nodes[quadNW] = q.child(vec2.AABB{Min: min, Max: mid})
	q.nodes[quadSW] = q.child(vec2.AABB{Min: vec2.New(min.X, mid.Y), Max: vec2.New(mid.X, max.Y)})
	q.nodes[quadSE] = q.child(vec2.AABB{Min: mid, Max: max})
}

// index returns the quadrant that fully contains box, or -1 when box straddles a split line.
// Classification uses the split lines only, so boxes outside the node bounds still land somewhere.
func (q *QuadTree[T]) index(box vec2.AABB) int {
	mid := q.bounds.Center()
	top := box.Max.Y < mid.Y
	bottom := box.Min.Y > mid.Y
	switch {
	case box.Max.X < mid.X:
		if top {
			return quadNW
		}
		if bottom {
			return quadSW
		}
	case box.Min.X > mid.X:
		if top {
			return quadNE
		}
		if bottom {
			return quadSE
		}
	}
	return -1
}

// touched reports, per quadrant, whether box could overlap an entry stored there.
func (q *QuadTree[T]) touched(box vec2.AABB) [4]bool {
	mid := q.bounds.Center()
	left := box.Min.X < mid.X
	right := box.Max.X > mid.X
	up := box.Min.Y < mid.Y
	down := box.Max.Y > mid.Y
	var t [4]bool
	t[quadNE] = right && up
	t[quadNW] = left && up
	t[quadSW] = left && down
	t[quadSE] = right && down
	return t
}

// Insert stores item with its bounding box.
func (q *QuadTree[T]) Insert(item T, box vec2.AABB) {
	q.insert(entry[T]{item: item, box: box})
}

func (q *QuadTree[T]) insert(e entry[T]) {
	if q.nodes != nil {
		if i := q.index(e.box); i != -1 {
			q.nodes[i].insert(e)
			return
		}
	}
	q.objects = append(q.objects, e)
	if len(q.objects) <= q.maxObjects || q.level >= q.maxLevels {
		return
	}
	if q.nodes == nil {
		q.split()
	}
	kept := q.objects[:0]
	for _, o := range q.objects {
		if i := q.index(o.box); i != -1 {
			q.nodes[i].insert(o)
			continue
		}
		kept = append(kept, o)
	}
	q.objects = kept
}

// Retrieve appends to dst every item that could overlap box: the entries of each node on the path
// toward box plus, where box straddles a split line, the entries of every quadrant it reaches.
// The result may include items that do not overlap box, and may include the querying item itself.
func (q *QuadTree[T]) Retrieve(dst []T, box vec2.AABB) []T {
	for _, o := range q.objects {
		dst = append(dst, o.item)
	}
	if q.nodes == nil {
		return dst
	}
	if i := q.index(box); i != -1 {
		return q.nodes[i].Retrieve(dst, box)
	}
	for i, hit := range q.touched(box) {
		if hit {
			dst = q.nodes[i].Retrieve(dst, box)
		}
	}
	return dst
}

func (q *QuadTree[T]) walk(fn func(e entry[T])) {
	for _, o := range q.objects {
		fn(o)
	}
	for _, n := range q.nodes {
		n.walk(fn)
	}
}

// Pairs calls fn once for each pair found by retrieving candidates for every stored item.
func (q *QuadTree[T]) Pairs(fn func(a, b T)) {
	if q.seen == nil {
		q.seen = make(pairSet)
	}
	q.seen.reset()
	q.walk(func(e entry[T]) {
		q.scratch = q.Retrieve(q.scratch[:0], e.box)
		for _, other := range q.scratch {
			if other == e.item || !q.seen.add(e.item.ID(), other.ID()) {
				continue
			}
			fn(e.item, other)
		}
	})
}

// Len returns the number of stored entries in the whole tree.
func (q *QuadTree[T]) Len() int {
	n := len(q.objects)
	for _, c := range q.nodes {
		n += c.Len()
	}
	return n
}

// Depth returns the deepest level in use below and including q.
func (q *QuadTree[T]) Depth() int {
	d := q.level
	for _, c := range q.nodes {
		if cd := c.Depth(); cd > d {
			d = cd
		}
	}
	return d
}
