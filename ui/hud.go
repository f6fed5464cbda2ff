// Package ui provides the raygui status bar drawn over the grid.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// StatusBarHeight is the height in pixels of the HUD status bar.
const StatusBarHeight = 20

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Generation  int
	Population  int
	Births      int
	Deaths      int
	FPS         int32 // 0 = not shown
	ScreenWidth int32
}

// StatusText formats the HUD line.
func StatusText(d HUDData) string {
	s := fmt.Sprintf("Gen: %d | Alive: %d | +%d -%d", d.Generation, d.Population, d.Births, d.Deaths)
	if d.FPS > 0 {
		s += fmt.Sprintf(" | FPS: %d", d.FPS)
	}
	return s
}

// HUD renders the heads-up status bar.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the status bar along the top of the screen.
func (h *HUD) Draw(data HUDData) {
	gui.StatusBar(
		rl.Rectangle{X: 0, Y: 0, Width: float32(data.ScreenWidth), Height: StatusBarHeight},
		StatusText(data),
	)
}
