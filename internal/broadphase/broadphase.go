// Package broadphase narrows the all-pairs collision problem down to candidate pairs.
// Every partitioner here is conservative: the pairs it reports are a superset of the
// pairs whose boxes overlap, so the narrow phase must still verify each one.
package broadphase

import (
	"bytes"

	uuid "github.com/satori/go.uuid"

	"physics-engine/internal/vec2"
)

// Item is anything that can be partitioned. ID gives a stable identity used to de-duplicate pairs.
type Item interface {
	comparable
	ID() uuid.UUID
}

// Pair is an unordered candidate pair.
type Pair[T Item] struct {
	A, B T
}

// Partitioner is rebuilt every step: Clear, Insert every item with its current box, then Pairs.
type Partitioner[T Item] interface {
	Clear()
	Insert(item T, box vec2.AABB)
	Pairs(fn func(a, b T))
}

// pairKey identifies a pair regardless of argument order.
type pairKey [2]uuid.UUID

func keyOf(a, b uuid.UUID) pairKey {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return pairKey{a, b}
}

// pairSet remembers which pairs were already emitted during one Pairs call.
type pairSet map[pairKey]struct{}

// add returns false when the pair was already present.
func (s pairSet) add(a, b uuid.UUID) bool {
	k := keyOf(a, b)
	if _, ok := s[k]; ok {
		return false
	}
	s[k] = struct{}{}
	return true
}

func (s pairSet) reset() {
	clear(s)
}

type entry[T Item] struct {
	item T
	box  vec2.AABB
}

// Collect runs p.Pairs and returns the pairs as a slice, appended to dst.
func Collect[T Item](p Partitioner[T], dst []Pair[T]) []Pair[T] {
	p.Pairs(func(a, b T) {
		dst = append(dst, Pair[T]{A: a, B: b})
	})
	return dst
}

// Naive reports every pair of inserted items. It is the reference used when spatial optimization is off.
type Naive[T Item] struct {
	entries []entry[T]
}

// NewNaive returns an empty all-pairs partitioner.
func NewNaive[T Item]() *Naive[T] {
	return &Naive[T]{}
}

// Clear removes every item.
func (n *Naive[T]) Clear() {
	n.entries = n.entries[:0]
}

// Insert adds item; box is ignored.
func (n *Naive[T]) Insert(item T, box vec2.AABB) {
	n.entries = append(n.entries, entry[T]{item: item, box: box})
}

// Pairs calls fn for every pair of distinct items.
func (n *Naive[T]) Pairs(fn func(a, b T)) {
	for i := 0; i < len(n.entries); i++ {
		for j := i + 1; j < len(n.entries); j++ {
			fn(n.entries[i].item, n.entries[j].item)
		}
	}
}
