package game

// draw renders the current generation. EndFrame is deferred so the frame is
// presented on every exit path.
func (g *Game) draw() {
	g.surface.BeginFrame()
	defer g.surface.EndFrame()

	g.surface.Clear(g.cfg.Derived.Background)

	cs := g.cfg.Display.CellSize
	alive := g.cfg.Derived.Alive
	for y := 0; y < g.current.Height(); y++ {
		for x := 0; x < g.current.Width(); x++ {
			if !g.current.Alive(x, y) {
				continue
			}
			px, py := x*cs, y*cs
			for dy := 0; dy < cs; dy++ {
				for dx := 0; dx < cs; dx++ {
					g.surface.PlotPixel(px+dx, py+dy, alive)
				}
			}
		}
	}

	if g.overlay != nil {
		g.overlay.DrawStatus(g.Status())
	}
}
