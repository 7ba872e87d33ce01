// Package canvas provides the cell grid the globe and markers draw into:
// one rune and one foreground color per terminal cell.
package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Canvas is a width×height grid of colored runes.
type Canvas struct {
	width  int
	height int
	runes  [][]rune
	colors [][]lipgloss.Color
}

// New returns a canvas filled with spaces.
func New(width, height int) *Canvas {
	c := &Canvas{width: width, height: height}
	c.runes = make([][]rune, height)
	c.colors = make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		c.runes[y] = make([]rune, width)
		c.colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			c.runes[y][x] = ' '
		}
	}
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.height }

// Set writes one cell. Out-of-bounds writes are ignored.
func (c *Canvas) Set(x, y int, r rune, color lipgloss.Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.runes[y][x] = r
	c.colors[y][x] = color
}

// At returns the rune currently at a cell, or space when out of bounds.
func (c *Canvas) At(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' '
	}
	return c.runes[y][x]
}

// WriteString writes a horizontal run of text starting at (x, y), clipping
// at the canvas edge.
func (c *Canvas) WriteString(x, y int, s string, color lipgloss.Color) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, color)
	}
}

// String renders the canvas to a styled string, one line per row. Adjacent
// cells sharing a color are coalesced into one styled run to keep the
// output compact.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		x := 0
		for x < c.width {
			color := c.colors[y][x]
			run := x
			for run < c.width && c.colors[y][run] == color {
				run++
			}
			segment := string(c.runes[y][x:run])
			if color == "" {
				b.WriteString(segment)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(color).Render(segment))
			}
			x = run
		}
		if y < c.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
