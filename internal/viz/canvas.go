package viz

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const brailleBase = 0x2800

// dot bit for sub-pixel (x%2, y%4) of a braille cell
var dots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid where each cell holds 2x4 braille dots.
type Canvas struct {
	Cols, Rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

// Size is the canvas size in dots.
func (c *Canvas) Size() (int, int) {
	return c.Cols * 2, c.Rows * 4
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Cols*2 || y >= c.Rows*4 {
		return
	}
	c.cells[(y/4)*c.Cols+x/2] |= dots[y%4][x%2]
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.Cols*2 || y >= c.Rows*4 {
		return false
	}
	return c.cells[(y/4)*c.Cols+x/2]&dots[y%4][x%2] != 0
}

// Line draws from (x0,y0) to (x1,y1) with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for r := 0; r < c.Rows; r++ {
		b.WriteString(string(c.cells[r*c.Cols : (r+1)*c.Cols]))
		if r < c.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Viewport maps the world ground plane (x, z) onto canvas dots, centred on
// Center with Scale dots per metre.
type Viewport struct {
	Center mgl64.Vec3
	Scale  float64
}

func (v Viewport) Project(c *Canvas, p mgl64.Vec3) (int, int) {
	w, h := c.Size()
	x := float64(w)/2 + (p[0]-v.Center[0])*v.Scale
	y := float64(h)/2 - (p[2]-v.Center[2])*v.Scale
	return int(math.Round(x)), int(math.Round(y))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
