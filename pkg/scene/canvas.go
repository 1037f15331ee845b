// Package scene renders graph content onto a terminal cell canvas. Drawable
// content is modeled as tagged item variants behind a common bounds/draw
// capability instead of a widget hierarchy.
package scene

import (
	"math"
	"strings"

	"github.com/plokm5151/tracecraft/pkg/graph"
)

// Canvas is a fixed-size cell buffer with a world-to-cell transform.
// Cell coordinates grow right and down.
type Canvas struct {
	width  int
	height int
	cells  []rune

	scaleX  float64
	scaleY  float64
	offsetX float64
	offsetY float64
}

// NewCanvas creates a blank canvas with an identity transform.
func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]rune, width*height),
		scaleX: 1,
		scaleY: 1,
	}
	c.Fill(' ')
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.height }

// Fill sets every cell to r.
func (c *Canvas) Fill(r rune) {
	for i := range c.cells {
		c.cells[i] = r
	}
}

// SetTransform sets the world-to-cell mapping:
// cell = world*scale + offset, per axis.
func (c *Canvas) SetTransform(scaleX, scaleY, offsetX, offsetY float64) {
	c.scaleX = scaleX
	c.scaleY = scaleY
	c.offsetX = offsetX
	c.offsetY = offsetY
}

// Project maps a world position to cell coordinates.
func (c *Canvas) Project(p graph.Position) (int, int) {
	x := int(math.Round(p.X*c.scaleX + c.offsetX))
	y := int(math.Round(p.Y*c.scaleY + c.offsetY))
	return x, y
}

// Set writes a single cell; out-of-bounds writes are clipped.
func (c *Canvas) Set(x, y int, r rune) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = r
}

// At returns the rune at a cell, or space when out of bounds.
func (c *Canvas) At(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' '
	}
	return c.cells[y*c.width+x]
}

// DrawWorldLine draws a straight line between two world positions.
func (c *Canvas) DrawWorldLine(a, b graph.Position, r rune) {
	x0, y0 := c.Project(a)
	x1, y1 := c.Project(b)
	c.drawCellLine(x0, y0, x1, y1, r)
}

// drawCellLine steps along the longer axis so the line has no gaps.
func (c *Canvas) drawCellLine(x0, y0, x1, y1 int, r rune) {
	dx := x1 - x0
	dy := y1 - y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		c.Set(x0, y0, r)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(float64(dx)*t))
		y := y0 + int(math.Round(float64(dy)*t))
		c.Set(x, y, r)
	}
}

// DrawWorldBox draws a bordered box for a world-space rectangle with a label
// centered inside. Boxes that project below 3x3 cells collapse to a single
// marker glyph.
func (c *Canvas) DrawWorldBox(pos graph.Position, w, h float64, label string) {
	x0, y0 := c.Project(pos)
	x1, y1 := c.Project(graph.Position{X: pos.X + w, Y: pos.Y + h})

	if x1-x0 < 2 || y1-y0 < 2 {
		c.Set((x0+x1)/2, (y0+y1)/2, '▢')
		return
	}

	for x := x0 + 1; x < x1; x++ {
		c.Set(x, y0, '─')
		c.Set(x, y1, '─')
	}
	for y := y0 + 1; y < y1; y++ {
		c.Set(x0, y, '│')
		c.Set(x1, y, '│')
	}
	c.Set(x0, y0, '╭')
	c.Set(x1, y0, '╮')
	c.Set(x0, y1, '╰')
	c.Set(x1, y1, '╯')

	inner := x1 - x0 - 1
	if inner <= 0 || label == "" {
		return
	}
	text := []rune(label)
	if len(text) > inner {
		text = text[:inner]
	}
	row := (y0 + y1) / 2
	col := x0 + 1 + (inner-len(text))/2
	for i, r := range text {
		c.Set(col+i, row, r)
	}
}

// DrawCenteredText writes multi-line text centered on the canvas,
// independent of the world transform.
func (c *Canvas) DrawCenteredText(text string) {
	lines := strings.Split(text, "\n")
	top := c.height/2 - len(lines)/2
	for i, line := range lines {
		runes := []rune(line)
		col := c.width/2 - len(runes)/2
		for j, r := range runes {
			c.Set(col+j, top+i, r)
		}
	}
}

// String renders the cell buffer as newline-joined rows.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.width + 1) * c.height)
	for y := 0; y < c.height; y++ {
		b.WriteString(string(c.cells[y*c.width : (y+1)*c.width]))
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
