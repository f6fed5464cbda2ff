// Package grid holds the toroidal cell field and the patterns stamped onto it.
package grid

import "strings"

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Grid is a fixed-size toroidal field of boolean cells stored row-major.
// Dimensions never change after New.
type Grid struct {
	w, h  int
	cells []bool
}

// New allocates a w*h grid with every cell dead.
func New(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{w: w, h: h, cells: make([]bool, w*h)}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Alive reports whether the in-bounds cell (x, y) is alive.
func (g *Grid) Alive(x, y int) bool { return g.cells[y*g.w+x] }

// Set assigns the in-bounds cell (x, y).
func (g *Grid) Set(x, y int, alive bool) { g.cells[y*g.w+x] = alive }

// Wrap reduces any coordinate pair into bounds on the torus.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.w + g.w) % g.w
	y = (y%g.h + g.h) % g.h
	return x, y
}

// Clear kills every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = false
	}
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// LiveCells returns the coordinates of all live cells in row-major order.
func (g *Grid) LiveCells() []Point {
	var pts []Point
	for i, c := range g.cells {
		if c {
			pts = append(pts, Point{X: i % g.w, Y: i / g.w})
		}
	}
	return pts
}

// Equal reports whether other has the same dimensions and cell states.
func (g *Grid) Equal(other *Grid) bool {
	if g.w != other.w || g.h != other.h {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{w: g.w, h: g.h, cells: make([]bool, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// String renders the grid as rows of '#' (alive) and '.' (dead).
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.w + 1) * g.h)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if g.Alive(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
