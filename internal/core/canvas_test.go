package core

import "testing"

func TestCanvasToCell(t *testing.T) {
	c := NewCanvas(NewScreen(80, 24), 640, 480)

	tests := []struct {
		name     string
		in       Point
		expected Point
	}{
		{"origin", Pt(0, 0), Pt(0, 0)},
		{"center", Pt(320, 240), Pt(40, 12)},
		{"inside first cell", Pt(7, 19), Pt(0, 0)},
		{"above the screen", Pt(0, -50), Pt(0, -3)},
		{"one unit above", Pt(-1, -1), Pt(-1, -1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.ToCell(tc.in); got != tc.expected {
				t.Errorf("ToCell(%v) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestCanvasFillRect(t *testing.T) {
	s := NewScreen(80, 24)
	c := NewCanvas(s, 640, 480)

	// Car-sized rect on cell boundaries: 40x60 world units -> 5x3 cells
	c.FillRect(ColorRed, Pt(296, 400), Pt(336, 460))

	for y := 20; y < 23; y++ {
		for x := 37; x < 42; x++ {
			cell := s.GetCell(x, y)
			if cell.Color != ColorRed || cell.Rune != '█' {
				t.Errorf("expected red fill at (%d, %d), got %+v", x, y, cell)
			}
		}
	}
	if s.Get(36, 20) != ' ' || s.Get(42, 20) != ' ' {
		t.Error("FillRect should not spill outside its columns")
	}

	// Corner order does not matter
	s.Clear()
	c.FillRect(ColorDarkGray, Pt(80, 80), Pt(0, 0))
	if s.GetCell(0, 0).Rune != '░' || s.GetCell(9, 3).Rune != '░' {
		t.Error("FillRect with swapped corners should fill the same area")
	}
}

func TestCanvasFillRectPartiallyOffscreen(t *testing.T) {
	s := NewScreen(80, 24)
	c := NewCanvas(s, 640, 480)

	// An obstacle just above the top edge must not panic and only draws visible rows
	c.FillRect(ColorBlack, Pt(100, -50), Pt(150, -20))
	for x := 0; x < 80; x++ {
		if s.Get(x, 0) != ' ' {
			t.Fatalf("obstacle fully above the screen should not draw, found %q at x=%d", s.Get(x, 0), x)
		}
	}

	c.FillRect(ColorBlack, Pt(100, -10), Pt(150, 20))
	if s.Get(13, 0) != '▓' {
		t.Errorf("partially visible obstacle should draw its visible part, got %q", s.Get(13, 0))
	}
}

func TestCanvasVerticalLine(t *testing.T) {
	s := NewScreen(80, 24)
	c := NewCanvas(s, 640, 480)

	// A 20-unit dash is one cell tall at this scale
	c.Line(ColorWhite, Pt(320, 40), Pt(320, 60))
	if s.GetCell(40, 2).Rune != '│' {
		t.Errorf("expected dash at (40, 2), got %q", s.Get(40, 2))
	}
	if s.Get(40, 3) != ' ' {
		t.Error("dash should not extend into the gap")
	}
}

func TestCanvasDiagonalLine(t *testing.T) {
	s := NewScreen(10, 10)
	c := NewCanvas(s, 10, 10)

	c.Line(ColorGreen, Pt(0, 0), Pt(4, 4))
	for i := 0; i <= 4; i++ {
		if s.Get(i, i) != '•' {
			t.Errorf("expected diagonal point at (%d, %d)", i, i)
		}
	}
}

func TestCanvasText(t *testing.T) {
	s := NewScreen(80, 24)
	c := NewCanvas(s, 640, 480)

	c.Text(ColorYellow, Pt(489, 10), "SCORE: 7")
	if s.Row(0)[61:69] != "SCORE: 7" {
		t.Errorf("text not at expected cell, row 0 = %q", s.Row(0))
	}
	if s.GetCell(61, 0).Color != ColorYellow {
		t.Error("text should keep its color")
	}
}
