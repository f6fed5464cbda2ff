// Package renderer provides game.Surface implementations: a raylib window,
// an SDL2 window and a tcell terminal.
package renderer

import (
	"errors"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/life/config"
	"github.com/pthm-cable/life/game"
	"github.com/pthm-cable/life/ui"
)

// ErrWindow is returned when the raylib window or GL context cannot be created.
var ErrWindow = errors.New("renderer: window creation failed")

// RaylibOptions selects how the window is created.
type RaylibOptions struct {
	Hidden    bool  // Create the window hidden (for offscreen rendering)
	Offscreen bool  // Draw into a render texture instead of the window
	TargetFPS int32 // 0 = uncapped; pacing comes from the frame delay
}

// Raylib draws frames into a raylib window, or into a render texture when
// created offscreen.
type Raylib struct {
	width, height int32
	title         string

	target    rl.RenderTexture2D
	offscreen bool

	hud *ui.HUD
}

// NewRaylib opens a window sized to the grid in pixels. It fails immediately
// if the window is not ready after creation.
func NewRaylib(cfg *config.Config, opts RaylibOptions) (*Raylib, error) {
	r := &Raylib{
		width:     int32(cfg.Derived.WindowWidth),
		height:    int32(cfg.Derived.WindowHeight),
		title:     cfg.Display.Title,
		offscreen: opts.Offscreen,
		hud:       ui.NewHUD(),
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	if opts.Hidden {
		rl.SetConfigFlags(rl.FlagWindowHidden)
	}
	rl.InitWindow(r.width, r.height, r.title)
	if !rl.IsWindowReady() {
		return nil, ErrWindow
	}
	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(opts.TargetFPS)
	}
	if r.offscreen {
		r.target = rl.LoadRenderTexture(r.width, r.height)
	}
	return r, nil
}

func toRL(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (r *Raylib) BeginFrame() {
	if r.offscreen {
		rl.BeginTextureMode(r.target)
		return
	}
	rl.BeginDrawing()
}

func (r *Raylib) Clear(c color.RGBA) {
	rl.ClearBackground(toRL(c))
}

func (r *Raylib) PlotPixel(x, y int, c color.RGBA) {
	rl.DrawPixel(int32(x), int32(y), toRL(c))
}

func (r *Raylib) EndFrame() {
	if r.offscreen {
		rl.EndTextureMode()
		return
	}
	rl.EndDrawing()
}

// ShouldClose reports a window close request (close button or Escape).
func (r *Raylib) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// DrawStatus draws the status bar along the top edge.
func (r *Raylib) DrawStatus(s game.Status) {
	r.hud.Draw(ui.HUDData{
		Generation:  s.Generation,
		Population:  s.Population,
		Births:      s.Births,
		Deaths:      s.Deaths,
		FPS:         rl.GetFPS(),
		ScreenWidth: r.width,
	})
}

// ExportPNG writes the last offscreen frame to path.
func (r *Raylib) ExportPNG(path string) error {
	if !r.offscreen {
		return errors.New("renderer: ExportPNG requires an offscreen surface")
	}
	// Render textures are stored bottom-up
	img := rl.LoadImageFromTexture(r.target.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)
	if !rl.ExportImage(*img, path) {
		return errors.New("renderer: exporting " + path + " failed")
	}
	return nil
}

// Close releases the render texture and closes the window.
func (r *Raylib) Close() {
	if r.offscreen {
		rl.UnloadRenderTexture(r.target)
	}
	rl.CloseWindow()
}
