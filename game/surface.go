package game

import "image/color"

// Surface is a frame-scoped pixel target with a close signal.
//
// Every draw call happens between BeginFrame and EndFrame. ShouldClose is
// polled once at the top of each loop iteration.
type Surface interface {
	BeginFrame()
	Clear(c color.RGBA)
	PlotPixel(x, y int, c color.RGBA)
	EndFrame()
	ShouldClose() bool
}

// Status is the per-frame summary handed to overlays.
type Status struct {
	Generation int
	Population int
	Births     int
	Deaths     int
}

// Overlay is implemented by surfaces that can draw a status display on top
// of the cells. It is called inside the frame, after the cells.
type Overlay interface {
	DrawStatus(s Status)
}
