package viz

import (
	"strings"
)

// Braille patterns hold 2x4 dots per cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// at an offset of 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Braille dot grid with a world-coordinate window. The dot
// grid is (Width*2) x (Height*4); world y grows upwards.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	minX, maxX, minY, maxY float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		maxX:   1,
		maxY:   1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// SetWindow sets the world rectangle mapped onto the canvas. Degenerate
// ranges are widened to one unit.
func (c *Canvas) SetWindow(minX, maxX, minY, maxY float64) {
	if maxX <= minX {
		maxX = minX + 1
	}
	if maxY <= minY {
		maxY = minY + 1
	}
	c.minX, c.maxX, c.minY, c.maxY = minX, maxX, minY, maxY
}

// Dot maps a world point to dot coordinates.
func (c *Canvas) Dot(x, y float64) (int, int) {
	dw, dh := c.Width*2-1, c.Height*4-1
	px := (x - c.minX) / (c.maxX - c.minX) * float64(dw)
	py := (c.maxY - y) / (c.maxY - c.minY) * float64(dh)
	return int(px + 0.5), int(py + 0.5)
}

// Set turns on the dot at (x, y) in dot coordinates. Out of range dots are
// ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line between two dots using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Polyline connects consecutive world points.
func (c *Canvas) Polyline(xs, ys []float64) {
	n := min(len(xs), len(ys))
	if n == 1 {
		c.Set(c.Dot(xs[0], ys[0]))
		return
	}
	for i := 1; i < n; i++ {
		x0, y0 := c.Dot(xs[i-1], ys[i-1])
		x1, y1 := c.Dot(xs[i], ys[i])
		c.DrawLine(x0, y0, x1, y1)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
