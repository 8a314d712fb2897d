// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/cursor.go
// Summary: Cursor layout over a resizing surface: label columns, result glyphs and the cursor trail.
// Usage: Driven synchronously by the reporter in low-verbosity mode.

package grid

import (
	"github.com/framegrace/testrain/surface"
)

// Stride is the number of physical columns used by one logical column.
const Stride = 2

type cell struct {
	row, col int
	glyph    rune
	style    surface.Style
}

// Cursor owns the single write position over a surface. It is not safe for
// concurrent use.
type Cursor struct {
	s       surface.Surface
	palette *Palette

	row, col int
	color    surface.Style
	prev     *cell
	started  bool
}

// NewCursor returns a cursor positioned before the first column.
func NewCursor(s surface.Surface, palette *Palette) *Cursor {
	if palette == nil {
		palette = NewPalette(DefaultColumnStyles...)
	}
	return &Cursor{
		s:       s,
		palette: palette,
		col:     -Stride,
	}
}

// Position returns the current row and column.
func (c *Cursor) Position() (row, col int) {
	return c.row, c.col
}

// ColumnStyle returns the style of the current column.
func (c *Cursor) ColumnStyle() surface.Style {
	return c.color
}

// BeginColumn moves to the next column pair, clears it and draws label down
// from the top row. The column takes the next palette style. A label taller
// than the surface continues in a fresh column pair.
func (c *Cursor) BeginColumn(label string) {
	c.nextPair()
	c.color = c.palette.Next()
	c.started = true
	for _, glyph := range label {
		if c.overflow() {
			c.nextPair()
		}
		c.put(glyph)
		c.row++
	}
	c.s.Show()
}

// WriteResult writes a result glyph at the cursor and moves one row down. When
// the current column is exhausted the cursor continues in a fresh column pair
// without a label.
func (c *Cursor) WriteResult(glyph rune) {
	if !c.started {
		c.nextPair()
		c.color = c.palette.Next()
		c.started = true
	} else if c.overflow() {
		c.nextPair()
	}
	c.put(glyph)
	c.row++
	c.s.Show()
}

// Fix normalises the cursor against the current surface extent. It is
// idempotent.
func (c *Cursor) Fix() {
	rows, cols := c.s.Size()
	c.row, c.col = Fix(c.row, c.col, rows, cols)
}

// Fix returns (row, col) normalised for a rows x cols surface: the
// bottom-right cell and rows past the bottom wrap to the top of the next
// column pair, and columns past the right edge wrap to column 0. Negative
// coordinates clamp to 0. The rules are applied until nothing changes.
func Fix(row, col, rows, cols int) (int, int) {
	if rows < 1 || cols < 1 {
		return 0, 0
	}
	for i := 0; i < 4; i++ {
		r, cl := fixOnce(row, col, rows, cols)
		if r == row && cl == col {
			break
		}
		row, col = r, cl
	}
	return row, col
}

func fixOnce(row, col, rows, cols int) (int, int) {
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	if row == rows-1 && col == cols-1 {
		row = 0
		col += Stride
	}
	if row >= rows {
		row = 0
		col += Stride
	}
	if col >= cols {
		col = 0
	}
	return row, col
}

func (c *Cursor) overflow() bool {
	rows, cols := c.s.Size()
	if c.row >= rows || c.col >= cols {
		return true
	}
	return c.row == rows-1 && c.col == cols-1
}

func (c *Cursor) nextPair() {
	_, cols := c.s.Size()
	c.col += Stride
	if c.col >= cols || c.col < 0 {
		c.col = 0
	}
	c.row = 0
	if p := c.prev; p != nil {
		surface.Put(c.s, p.row, p.col, p.glyph, p.style)
		c.prev = nil
	}
	surface.ClearColumn(c.s, c.col)
	surface.ClearColumn(c.s, c.col+1)
}

// put writes glyph highlighted at the cursor and returns the previously
// written cell to its column style.
func (c *Cursor) put(glyph rune) {
	c.Fix()
	if p := c.prev; p != nil {
		surface.Put(c.s, p.row, p.col, p.glyph, p.style)
	}
	surface.Put(c.s, c.row, c.col, glyph, surface.Active)
	c.prev = &cell{row: c.row, col: c.col, glyph: glyph, style: c.color}
}
