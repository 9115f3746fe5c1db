package broadphase

import (
	"math"

	"physics-engine/internal/vec2"
)

// DefaultCellSize is used when a grid is created with a non-positive cell size.
const DefaultCellSize = 100.0

// maxCellsPerAxis bounds how many cells a single box may span on one axis.
// Boxes wider than this are kept in an overflow list that pairs with everything.
const maxCellsPerAxis = 1 << 10

type cellKey struct {
	col, row int
}

// Grid is a uniform spatial hash of square cells. An item is inserted into every cell its box overlaps,
// so large bodies such as rings live in many cells at once. The grid is unbounded: cells are created on
// demand and kept while they are in use, so steady-state rebuilds do not allocate.
type Grid[T Item] struct {
	cellSize    float64
	invCellSize float64
	cells       map[cellKey][]T
	// order lists non-empty cells in the order they were first filled since the last Clear.
	// Pairs walks cells in this order so results are deterministic.
	order []cellKey
	// all holds every inserted item; oversized holds items too large to hash.
	all       []T
	oversized []T
	seen      pairSet
}

// NewGrid returns an empty grid with the given cell size.
func NewGrid[T Item](cellSize float64) *Grid[T] {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid[T]{
		cellSize:    cellSize,
		invCellSize: 1 / cellSize,
		cells:       make(map[cellKey][]T),
		seen:        make(pairSet),
	}
}

// CellSize returns the edge length of one cell.
func (g *Grid[T]) CellSize() float64 {
	return g.cellSize
}

// Clear empties every cell. Cells filled since the previous Clear keep their storage; cells that
// stayed empty for a whole rebuild are dropped so the map follows the bodies instead of growing.
func (g *Grid[T]) Clear() {
	for k, items := range g.cells {
		if len(items) == 0 {
			delete(g.cells, k)
		}
	}
	for _, k := range g.order {
		g.cells[k] = g.cells[k][:0]
	}
	g.order = g.order[:0]
	g.all = g.all[:0]
	g.oversized = g.oversized[:0]
}

func (g *Grid[T]) cellCoord(v float64) int {
	return int(math.Floor(v * g.invCellSize))
}

// Insert adds item to every cell overlapped by box.
func (g *Grid[T]) Insert(item T, box vec2.AABB) {
	g.all = append(g.all, item)
	if !box.Min.IsFinite() || !box.Max.IsFinite() ||
		box.Width()*g.invCellSize >= maxCellsPerAxis || box.Height()*g.invCellSize >= maxCellsPerAxis {
		g.oversized = append(g.oversized, item)
		return
	}
	minCol, maxCol := g.cellCoord(box.Min.X), g.cellCoord(box.Max.X)
	minRow, maxRow := g.cellCoord(box.Min.Y), g.cellCoord(box.Max.Y)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			k := cellKey{col, row}
			items := g.cells[k]
			if len(items) == 0 {
				g.order = append(g.order, k)
			}
			g.cells[k] = append(items, item)
		}
	}
}

// Pairs calls fn once for each pair of distinct items sharing at least one cell.
// Pairs sharing several cells are reported once.
func (g *Grid[T]) Pairs(fn func(a, b T)) {
	g.seen.reset()
	for _, k := range g.order {
		items := g.cells[k]
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				a, b := items[i], items[j]
				if a == b {
					continue
				}
				if !g.seen.add(a.ID(), b.ID()) {
					continue
				}
				fn(a, b)
			}
		}
	}
	for _, big := range g.oversized {
		for _, other := range g.all {
			if big == other || !g.seen.add(big.ID(), other.ID()) {
				continue
			}
			fn(big, other)
		}
	}
}

// CellCount returns the number of non-empty cells.
func (g *Grid[T]) CellCount() int {
	return len(g.order)
}
