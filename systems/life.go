// Package systems holds the per-generation simulation logic.
package systems

import (
	"fmt"

	"github.com/pthm-cable/life/grid"
)

// Census summarizes one computed generation.
type Census struct {
	Population int // live cells in the new generation
	Births     int // dead cells that became alive
	Deaths     int // live cells that died
}

// CountLiveNeighbors counts live cells among the 8 toroidal neighbors of (x, y).
// The result is always in [0, 8].
func CountLiveNeighbors(g *grid.Grid, x, y int) int {
	w, h := g.Width(), g.Height()
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := (x + dx + w) % w
			ny := (y + dy + h) % h
			if g.Alive(nx, ny) {
				n++
			}
		}
	}
	return n
}

// Rule applies Conway's rule: survive on 2 or 3 neighbors, birth on exactly 3.
func Rule(alive bool, neighbors int) bool {
	switch {
	case alive && (neighbors == 2 || neighbors == 3):
		return true
	case !alive && neighbors == 3:
		return true
	default:
		return false
	}
}

// NextGeneration writes the successor of current into next. It reads only
// from current and overwrites every cell of next, so the two must be distinct
// grids of the same size.
func NextGeneration(current, next *grid.Grid) Census {
	w, h := current.Width(), current.Height()
	if next.Width() != w || next.Height() != h {
		panic(fmt.Sprintf("systems: buffer size mismatch %dx%d vs %dx%d", w, h, next.Width(), next.Height()))
	}
	if current == next {
		panic("systems: current and next must be distinct buffers")
	}

	var c Census
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			alive := current.Alive(x, y)
			out := Rule(alive, CountLiveNeighbors(current, x, y))
			next.Set(x, y, out)

			switch {
			case out:
				c.Population++
				if !alive {
					c.Births++
				}
			case alive:
				c.Deaths++
			}
		}
	}
	return c
}
