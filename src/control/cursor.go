package control

import (
	"termlife/src/universe"
	"termlife/src/view"
)

//Cursor is the editing position, always kept inside the grid
type Cursor struct {
	row    int
	col    int
	width  int
	height int
}

//NewCursor places the cursor at the centre of the width x height grid
func NewCursor(width int, height int) Cursor {
	return Cursor{row: height / 2, col: width / 2, width: width, height: height}
}

func (c Cursor) Point() universe.Point {
	return universe.Point{Row: c.row, Col: c.col}
}

//Move moves the cursor one cell, it stops at the edges
func (c *Cursor) Move(d view.Direction) {
	switch d {
	case view.DirUp:
		c.row--
	case view.DirDown:
		c.row++
	case view.DirLeft:
		c.col--
	case view.DirRight:
		c.col++
	}
	c.clamp()
}

//MoveTo places the cursor at p clamped to the grid
func (c *Cursor) MoveTo(p universe.Point) {
	c.row, c.col = p.Row, p.Col
	c.clamp()
}

func (c *Cursor) clamp() {
	c.row = clamp(c.row, 0, c.height-1)
	c.col = clamp(c.col, 0, c.width-1)
}

func clamp(v int, lo int, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
