package core

// Canvas draws world-space primitives onto a Screen of terminal cells.
// World coordinates are scaled to the current screen size on every call,
// so the canvas follows screen resizes without being rebuilt.
type Canvas struct {
	screen *Screen
	worldW int
	worldH int
	fills  map[Color]rune
}

// DefaultFills maps fill colors to the glyph used for solid areas.
func DefaultFills() map[Color]rune {
	return map[Color]rune{
		ColorDarkGray: '░',
		ColorBlack:    '▓',
		ColorGray:     '▒',
	}
}

// NewCanvas creates a canvas for a world of worldW x worldH units.
func NewCanvas(s *Screen, worldW, worldH int) *Canvas {
	return &Canvas{
		screen: s,
		worldW: Max(worldW, 1),
		worldH: Max(worldH, 1),
		fills:  DefaultFills(),
	}
}

// Screen returns the backing cell buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

// ToCell converts a world point to the cell containing it.
func (c *Canvas) ToCell(p Point) Point {
	return Point{
		X: FloorDiv(p.X*c.screen.Width(), c.worldW),
		Y: FloorDiv(p.Y*c.screen.Height(), c.worldH),
	}
}

// ceilCell converts a world point to the first cell past it.
func (c *Canvas) ceilCell(p Point) Point {
	return Point{
		X: -FloorDiv(-p.X*c.screen.Width(), c.worldW),
		Y: -FloorDiv(-p.Y*c.screen.Height(), c.worldH),
	}
}

// Clear blanks the whole screen.
func (c *Canvas) Clear() {
	c.screen.Clear()
}

// FillRect fills the world rectangle spanned by two corners.
// Any cell the rectangle touches is filled.
func (c *Canvas) FillRect(col Color, a, b Point) {
	lo := Pt(Min(a.X, b.X), Min(a.Y, b.Y))
	hi := Pt(Max(a.X, b.X), Max(a.Y, b.Y))

	from := c.ToCell(lo)
	to := c.ceilCell(hi)
	fill, ok := c.fills[col]
	if !ok {
		fill = '█'
	}
	c.screen.DrawRect(NewRect(from.X, from.Y, Max(to.X-from.X, 1), Max(to.Y-from.Y, 1)), fill, col)
}

// Line draws a line between two world points.
func (c *Canvas) Line(col Color, a, b Point) {
	from := c.ToCell(a)
	to := c.ToCell(b)

	switch {
	case a.X == b.X:
		top, bottom := Min(from.Y, to.Y), Max(from.Y, to.Y)
		c.screen.DrawVLine(from.X, top, Max(bottom-top, 1), '│', col)
	case a.Y == b.Y:
		left, right := Min(from.X, to.X), Max(from.X, to.X)
		c.screen.DrawHLine(left, from.Y, Max(right-left, 1), '─', col)
	default:
		c.bresenham(col, from, to)
	}
}

// bresenham plots a diagonal line in cell space, endpoints included.
func (c *Canvas) bresenham(col Color, from, to Point) {
	dx := Abs(to.X - from.X)
	dy := -Abs(to.Y - from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}

	err := dx + dy
	x, y := from.X, from.Y
	for {
		c.screen.SetCell(x, y, '•', col)
		if x == to.X && y == to.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Text writes a string starting at the cell containing the world point.
func (c *Canvas) Text(col Color, at Point, s string) {
	p := c.ToCell(at)
	c.screen.DrawTextColor(p.X, p.Y, s, col)
}
