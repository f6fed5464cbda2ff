package grid

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPattern is returned when a placement names a pattern that does not exist.
var ErrUnknownPattern = errors.New("unknown pattern")

// Offset is a cell position relative to a pattern's local origin.
type Offset struct {
	DX, DY int
}

// Pattern is a named, immutable set of offsets.
type Pattern struct {
	Name    string
	Offsets []Offset
}

// Placement anchors a named pattern on the grid.
type Placement struct {
	Pattern string
	X, Y    int
}

// Glider is the 5-cell diagonal spaceship (period 4, moves by (1,1)).
var Glider = Pattern{
	Name: "glider",
	Offsets: []Offset{
		{1, 0},
		{2, 1},
		{0, 2}, {1, 2}, {2, 2},
	},
}

// Blinker is the 3-cell horizontal period-2 oscillator.
var Blinker = Pattern{
	Name: "blinker",
	Offsets: []Offset{
		{0, 1},
		{1, 1},
		{2, 1},
	},
}

// Pulsar is the 48-cell period-3 oscillator.
var Pulsar = Pattern{
	Name: "pulsar",
	Offsets: []Offset{
		// top arms
		{2, 0}, {3, 0}, {4, 0}, {8, 0}, {9, 0}, {10, 0},
		{0, 2}, {5, 2}, {7, 2}, {12, 2},
		{0, 3}, {5, 3}, {7, 3}, {12, 3},
		{0, 4}, {5, 4}, {7, 4}, {12, 4},
		{2, 5}, {3, 5}, {4, 5}, {8, 5}, {9, 5}, {10, 5},
		// mirrored bottom half
		{2, 7}, {3, 7}, {4, 7}, {8, 7}, {9, 7}, {10, 7},
		{0, 8}, {5, 8}, {7, 8}, {12, 8},
		{0, 9}, {5, 9}, {7, 9}, {12, 9},
		{0, 10}, {5, 10}, {7, 10}, {12, 10},
		{2, 12}, {3, 12}, {4, 12}, {8, 12}, {9, 12}, {10, 12},
	},
}

// Dinosaur is a decorative figure with no oscillation guarantee.
// The eye at (7,1) is listed twice; stamping makes the duplicate harmless.
var Dinosaur = Pattern{
	Name: "dinosaur",
	Offsets: []Offset{
		// head
		{6, 0}, {7, 0}, {8, 0},
		{5, 1}, {6, 1}, {7, 1}, {8, 1},
		// eye
		{7, 1},
		// neck and back
		{4, 2}, {5, 2}, {6, 2}, {7, 2}, {8, 2}, {9, 2},
		{3, 3}, {4, 3}, {5, 3}, {6, 3}, {7, 3}, {8, 3}, {9, 3},
		// front legs
		{6, 4}, {6, 5},
		// body and tail
		{2, 4}, {3, 4}, {4, 4}, {5, 4},
		{1, 5}, {2, 5}, {3, 5}, {4, 5},
		{0, 6}, {1, 6}, {2, 6}, {3, 6},
		{0, 7}, {1, 7}, {2, 7},
		// hind legs
		{6, 6}, {7, 6},
	},
}

var patterns = map[string]Pattern{
	Glider.Name:   Glider,
	Blinker.Name:  Blinker,
	Pulsar.Name:   Pulsar,
	Dinosaur.Name: Dinosaur,
}

// PatternByName looks up a built-in pattern.
func PatternByName(name string) (Pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return p, nil
}

// PatternNames returns the built-in pattern names sorted alphabetically.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bounds returns the pattern's extent (max offset + 1 on each axis).
func (p Pattern) Bounds() (w, h int) {
	for _, o := range p.Offsets {
		if o.DX+1 > w {
			w = o.DX + 1
		}
		if o.DY+1 > h {
			h = o.DY + 1
		}
	}
	return w, h
}

// Stamp sets every cell of p alive relative to the anchor. Offsets and the
// anchor wrap around the torus, so any anchor is legal. Cells already alive
// stay alive.
func Stamp(g *Grid, p Pattern, anchorX, anchorY int) {
	for _, o := range p.Offsets {
		x, y := g.Wrap(anchorX+o.DX, anchorY+o.DY)
		g.Set(x, y, true)
	}
}

// Seed stamps each placement in order.
func Seed(g *Grid, placements []Placement) error {
	for i, pl := range placements {
		p, err := PatternByName(pl.Pattern)
		if err != nil {
			return fmt.Errorf("placement %d: %w", i, err)
		}
		Stamp(g, p, pl.X, pl.Y)
	}
	return nil
}
