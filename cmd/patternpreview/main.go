// Pattern preview tool - interactive stepping of a single seed pattern on a
// small toroidal grid.
//
// Usage: go run ./cmd/patternpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/life/camera"
	"github.com/pthm-cable/life/config"
	"github.com/pthm-cable/life/grid"
	"github.com/pthm-cable/life/systems"
)

const (
	windowWidth  = 900
	windowHeight = 560
	gridCells    = 48
	cellPixels   = 10
	previewSize  = gridCells * cellPixels
	panelWidth   = windowWidth - previewSize - 30
)

// previewState holds the tool's simulation state.
type previewState struct {
	pattern    grid.Pattern
	anchorX    int
	anchorY    int
	current    *grid.Grid
	next       *grid.Grid
	generation int
	census     systems.Census
}

func newPreviewState(p grid.Pattern) *previewState {
	s := &previewState{
		current: grid.New(gridCells, gridCells),
		next:    grid.New(gridCells, gridCells),
	}
	s.load(p)
	return s
}

// load stamps p centered on an empty grid.
func (s *previewState) load(p grid.Pattern) {
	w, h := p.Bounds()
	s.pattern = p
	s.anchorX = (gridCells - w) / 2
	s.anchorY = (gridCells - h) / 2
	s.reset()
}

func (s *previewState) reset() {
	s.current.Clear()
	grid.Stamp(s.current, s.pattern, s.anchorX, s.anchorY)
	s.generation = 0
	s.census = systems.Census{Population: s.current.Population()}
}

func (s *previewState) step() {
	s.census = systems.NextGeneration(s.current, s.next)
	s.current, s.next = s.next, s.current
	s.generation++
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Pattern Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	bg := rl.Color{R: cfg.Derived.Background.R, G: cfg.Derived.Background.G, B: cfg.Derived.Background.B, A: 255}
	alive := rl.Color{R: cfg.Derived.Alive.R, G: cfg.Derived.Alive.G, B: cfg.Derived.Alive.B, A: 255}

	names := grid.PatternNames()
	first, _ := grid.PatternByName(names[0])
	state := newPreviewState(first)

	cam := camera.New(previewSize, previewSize, gridCells, gridCells)

	playing := false
	var speed float32 = 10 // generations per second
	var accum float32

	for !rl.WindowShouldClose() {
		if playing {
			accum += rl.GetFrameTime()
			for accum >= 1/speed {
				state.step()
				accum -= 1 / speed
			}
		}

		// View: arrows pan across the wrap, wheel zooms, V resets
		handleCameraInput(cam)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview, repeating the torus when zoomed out
		rl.DrawRectangle(10, 10, previewSize, previewSize, bg)
		rl.BeginScissorMode(10, 10, previewSize, previewSize)
		cols, rows := cam.VisibleCells()
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				cx, cy := cam.ScreenToCell(col*cam.Zoom, row*cam.Zoom)
				if state.current.Alive(cx, cy) {
					rl.DrawRectangle(int32(10+col*cam.Zoom), int32(10+row*cam.Zoom), int32(cam.Zoom), int32(cam.Zoom), alive)
				}
			}
		}
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Draw stats
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Generation: %d  Alive: %d  +%d -%d",
			state.generation, state.current.Population(), state.census.Births, state.census.Deaths), 15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Patterns", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, name := range names {
			label := name
			if name == state.pattern.Name {
				label = "> " + name
			}
			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 20), Height: 26}, label) {
				p, _ := grid.PatternByName(name)
				state.load(p)
				playing = false
			}
			panelY += 32
		}
		panelY += 10

		// Speed slider
		rl.DrawText("Speed (generations per second)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		speed = gui.SliderBar(
			rl.Rectangle{X: panelX + 20, Y: panelY, Width: float32(panelWidth - 100), Height: 20},
			"1", "30",
			speed, 1, 30,
		)
		rl.DrawText(fmt.Sprintf("%.0f", speed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 40

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(playing, "Pause", "Play")) {
			playing = !playing
			accum = 0
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Step") {
			state.step()
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset") {
			state.reset()
			playing = false
		}
		panelY += 50

		// Seed entry for config.yaml
		w, h := state.pattern.Bounds()
		rl.DrawText("Seed entry:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		rl.DrawText(seedYAML(state), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		rl.DrawText(fmt.Sprintf("bounds %dx%d, %d offsets", w, h, len(state.pattern.Offsets)), int32(panelX), int32(panelY), 14, rl.Gray)

		// Instructions
		rl.DrawText("Arrows pan, wheel zooms, V resets view, C copies", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(seedYAML(state))
		}

		rl.EndDrawing()
	}
}

func handleCameraInput(cam *camera.Camera) {
	if rl.IsKeyPressed(rl.KeyLeft) {
		cam.Pan(-1, 0)
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		cam.Pan(1, 0)
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		cam.Pan(0, -1)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		cam.Pan(0, 1)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		step := 1
		if wheel < 0 {
			step = -1
		}
		cam.ZoomBy(step)
	}
	if rl.IsKeyPressed(rl.KeyV) {
		cam.Reset()
	}
}

func seedYAML(s *previewState) string {
	return fmt.Sprintf("- {pattern: %s, x: %d, y: %d}", s.pattern.Name, s.anchorX, s.anchorY)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
