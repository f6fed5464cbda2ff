// Package camera provides a pixel viewport onto a toroidal cell grid.
package camera

// Camera controls which cells of a wrapping grid are visible and how large
// they are drawn. Panning past an edge continues on the opposite side.
type Camera struct {
	// X, Y is the cell drawn at the viewport's top-left corner, always
	// reduced into the grid
	X, Y int

	// Zoom is the edge length of one cell in pixels
	Zoom int

	// Viewport dimensions in pixels
	ViewportW, ViewportH int

	// Grid dimensions in cells (for toroidal wrapping)
	GridW, GridH int

	// Zoom constraints
	MinZoom, MaxZoom int

	defaultZoom int
}

// New creates a camera at the grid origin with the largest zoom that still
// fits the whole grid in the viewport.
func New(viewportW, viewportH, gridW, gridH int) *Camera {
	fit := viewportW / gridW
	if h := viewportH / gridH; h < fit {
		fit = h
	}
	if fit < 1 {
		fit = 1
	}
	c := &Camera{
		Zoom:        fit,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		GridW:       gridW,
		GridH:       gridH,
		MinZoom:     1,
		MaxZoom:     32,
		defaultZoom: fit,
	}
	return c
}

// CellToScreen returns the viewport pixel position of a cell's top-left
// corner, taking the forward toroidal distance from the camera origin.
func (c *Camera) CellToScreen(cx, cy int) (sx, sy int) {
	sx = mod(cx-c.X, c.GridW) * c.Zoom
	sy = mod(cy-c.Y, c.GridH) * c.Zoom
	return sx, sy
}

// ScreenToCell returns the wrapped cell under a viewport pixel.
func (c *Camera) ScreenToCell(sx, sy int) (cx, cy int) {
	cx = mod(c.X+floorDiv(sx, c.Zoom), c.GridW)
	cy = mod(c.Y+floorDiv(sy, c.Zoom), c.GridH)
	return cx, cy
}

// VisibleCells returns how many columns and rows are at least partly visible.
// These may exceed the grid size when zoomed out, in which case cells repeat.
func (c *Camera) VisibleCells() (cols, rows int) {
	cols = (c.ViewportW + c.Zoom - 1) / c.Zoom
	rows = (c.ViewportH + c.Zoom - 1) / c.Zoom
	return cols, rows
}

// Pan moves the camera by the given number of cells, wrapping at the edges.
func (c *Camera) Pan(dx, dy int) {
	c.X = mod(c.X+dx, c.GridW)
	c.Y = mod(c.Y+dy, c.GridH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom int) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy changes the zoom by step pixels per cell.
func (c *Camera) ZoomBy(step int) {
	c.SetZoom(c.Zoom + step)
}

// Reset returns the camera to the origin and the fitted zoom.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
	c.Zoom = c.defaultZoom
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// floorDiv rounds toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func clamp(x, min, max int) int {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
