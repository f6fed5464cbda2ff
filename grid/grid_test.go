package grid

import "testing"

func TestNewIsEmpty(t *testing.T) {
	g := New(200, 100)
	if g.Width() != 200 || g.Height() != 100 {
		t.Fatalf("size = %dx%d, want 200x100", g.Width(), g.Height())
	}
	if n := g.Population(); n != 0 {
		t.Errorf("population = %d, want 0", n)
	}
	if cells := g.LiveCells(); len(cells) != 0 {
		t.Errorf("live cells = %v, want none", cells)
	}
}

func TestNewClampsDimensions(t *testing.T) {
	g := New(0, -3)
	if g.Width() != 1 || g.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", g.Width(), g.Height())
	}
}

func TestWrap(t *testing.T) {
	g := New(10, 5)
	tests := []struct {
		x, y   int
		wx, wy int
	}{
		{0, 0, 0, 0},
		{9, 4, 9, 4},
		{10, 5, 0, 0},
		{-1, -1, 9, 4},
		{-11, -6, 9, 4},
		{25, 12, 5, 2},
	}
	for _, tt := range tests {
		x, y := g.Wrap(tt.x, tt.y)
		if x != tt.wx || y != tt.wy {
			t.Errorf("Wrap(%d,%d) = (%d,%d), want (%d,%d)", tt.x, tt.y, x, y, tt.wx, tt.wy)
		}
	}
}

func TestSetAliveAndLiveCells(t *testing.T) {
	g := New(4, 3)
	g.Set(3, 0, true)
	g.Set(1, 2, true)
	g.Set(0, 1, true)

	if !g.Alive(3, 0) || !g.Alive(1, 2) || !g.Alive(0, 1) {
		t.Fatal("set cells should be alive")
	}
	if g.Alive(0, 0) {
		t.Error("untouched cell should be dead")
	}

	want := []Point{{3, 0}, {0, 1}, {1, 2}}
	got := g.LiveCells()
	if len(got) != len(want) {
		t.Fatalf("live cells = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("live cell %d = %v, want %v", i, got[i], want[i])
		}
	}

	g.Set(3, 0, false)
	if g.Population() != 2 {
		t.Errorf("population = %d, want 2", g.Population())
	}

	g.Clear()
	if g.Population() != 0 {
		t.Errorf("population after Clear = %d, want 0", g.Population())
	}
}

func TestCloneAndEqual(t *testing.T) {
	g := New(5, 5)
	g.Set(2, 2, true)

	c := g.Clone()
	if !c.Equal(g) {
		t.Fatal("clone should equal original")
	}

	c.Set(0, 0, true)
	if c.Equal(g) {
		t.Error("modified clone should differ")
	}
	if g.Alive(0, 0) {
		t.Error("clone must not share storage with original")
	}

	if New(5, 4).Equal(New(4, 5)) {
		t.Error("grids of different shape should not be equal")
	}
}

func TestString(t *testing.T) {
	g := New(3, 2)
	g.Set(1, 0, true)
	g.Set(2, 1, true)

	want := ".#.\n..#\n"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
