// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/surface.go
// Summary: Character-addressable terminal surface used by the grid and the rain effect.
// Usage: Renderers write single cells through a Surface and flush with Show.

package surface

// Surface is a mutable grid of character cells whose extent may change between
// any two calls. Callers must re-query Size instead of caching it.
type Surface interface {
	// Size reports the current extent as rows, then columns.
	Size() (rows, cols int)
	// SetCell writes a glyph. Writes outside the current extent are dropped.
	SetCell(row, col int, glyph rune, style Style)
	// Show flushes pending writes to the display.
	Show()
}

// Display is a Surface backed by a terminal that must be released when
// drawing is over.
type Display interface {
	Surface
	// Fini restores the terminal. Implementations tolerate repeated calls.
	Fini()
}

// CanWrite reports whether (row, col) is a writable cell of s.
//
// The bottom-right cell is never writable: many terminals scroll when it is
// written, so the layout treats it as the overflow position.
func CanWrite(s Surface, row, col int) bool {
	if row < 0 || col < 0 {
		return false
	}
	rows, cols := s.Size()
	if row >= rows || col >= cols {
		return false
	}
	if row == rows-1 && col == cols-1 {
		return false
	}
	return true
}

// Put writes glyph at (row, col) when the cell is writable and reports
// whether the write happened.
func Put(s Surface, row, col int, glyph rune, style Style) bool {
	if !CanWrite(s, row, col) {
		return false
	}
	s.SetCell(row, col, glyph, style)
	return true
}

// ClearColumn blanks every writable cell of a physical column.
func ClearColumn(s Surface, col int) {
	rows, _ := s.Size()
	for row := 0; row < rows; row++ {
		Put(s, row, col, ' ', Plain)
	}
}
