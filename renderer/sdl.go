package renderer

import (
	"fmt"
	"image/color"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/pthm-cable/life/config"
)

// SDL draws frames with an SDL2 renderer. Events are drained in ShouldClose,
// which the loop calls from the main thread once per iteration.
type SDL struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	closed   bool
}

// NewSDL initializes SDL video and opens a window sized to the grid in pixels.
func NewSDL(cfg *config.Config) (*SDL, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}
	window, err := sdl.CreateWindow(cfg.Display.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Derived.WindowWidth), int32(cfg.Derived.WindowHeight),
		sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("%w: %v", ErrWindow, err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("%w: %v", ErrWindow, err)
	}
	return &SDL{window: window, renderer: renderer}, nil
}

func (s *SDL) BeginFrame() {}

func (s *SDL) Clear(c color.RGBA) {
	s.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	s.renderer.Clear()
}

func (s *SDL) PlotPixel(x, y int, c color.RGBA) {
	s.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	s.renderer.DrawPoint(int32(x), int32(y))
}

func (s *SDL) EndFrame() {
	s.renderer.Present()
}

// ShouldClose drains pending events and reports a quit request or Escape.
func (s *SDL) ShouldClose() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			s.closed = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && (e.Keysym.Sym == sdl.K_ESCAPE || e.Keysym.Sym == sdl.K_q) {
				s.closed = true
			}
		}
	}
	return s.closed
}

// Close destroys the window and shuts SDL down.
func (s *SDL) Close() {
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
}
