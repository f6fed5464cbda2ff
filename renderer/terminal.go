package renderer

import (
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/life/config"
	"github.com/pthm-cable/life/game"
	"github.com/pthm-cable/life/ui"
)

// Terminal draws each grid cell as two terminal columns of background color.
// Pixel coordinates are mapped back to cells, so only the top-left pixel of
// each block is drawn.
type Terminal struct {
	screen   tcell.Screen
	cellSize int
	bg       tcell.Style

	closed atomic.Bool
	done   chan struct{}
}

// NewTerminal initializes the terminal screen.
func NewTerminal(cfg *config.Config) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return newTerminal(screen, cfg)
}

func newTerminal(screen tcell.Screen, cfg *config.Config) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.HideCursor()

	t := &Terminal{
		screen:   screen,
		cellSize: cfg.Display.CellSize,
		done:     make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

// pollEvents only flips the close flag; it never touches the grid.
func (t *Terminal) pollEvents() {
	defer close(t.done)
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			// Screen finalized
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				t.closed.Store(true)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func style(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (t *Terminal) BeginFrame() {}

func (t *Terminal) Clear(c color.RGBA) {
	t.bg = style(c)
	t.screen.Fill(' ', t.bg)
}

func (t *Terminal) PlotPixel(x, y int, c color.RGBA) {
	if x%t.cellSize != 0 || y%t.cellSize != 0 {
		return
	}
	cx, cy := x/t.cellSize, y/t.cellSize
	st := style(c)
	t.screen.SetContent(cx*2, cy, ' ', nil, st)
	t.screen.SetContent(cx*2+1, cy, ' ', nil, st)
}

func (t *Terminal) EndFrame() {
	t.screen.Show()
}

// ShouldClose reports whether Escape, Ctrl-C or 'q' was pressed.
func (t *Terminal) ShouldClose() bool {
	return t.closed.Load()
}

// DrawStatus writes the status line on the top row.
func (t *Terminal) DrawStatus(s game.Status) {
	text := ui.StatusText(ui.HUDData{
		Generation: s.Generation,
		Population: s.Population,
		Births:     s.Births,
		Deaths:     s.Deaths,
	})
	st := tcell.StyleDefault.Reverse(true)
	for i, r := range []rune(text) {
		t.screen.SetContent(i, 0, r, nil, st)
	}
}

// Close restores the terminal and waits for the event goroutine to exit.
func (t *Terminal) Close() {
	t.screen.Fini()
	<-t.done
}
