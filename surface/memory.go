// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/memory.go
// Summary: In-memory Surface for headless rendering and tests.

package surface

import (
	"strings"
	"sync"
)

// Cell is one character cell of a Memory surface.
type Cell struct {
	Glyph rune
	Style Style
}

// Memory is a resizable in-memory Surface. It is safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	rows   int
	cols   int
	cells  [][]Cell
	writes int
	shows  int
	fini   int
}

// NewMemory returns a blank surface of the given extent.
func NewMemory(rows, cols int) *Memory {
	m := &Memory{}
	m.Resize(rows, cols)
	return m
}

// Resize changes the extent, keeping the overlapping cells.
func (m *Memory) Resize(rows, cols int) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make([][]Cell, rows)
	for y := range next {
		next[y] = make([]Cell, cols)
		for x := range next[y] {
			next[y][x] = Cell{Glyph: ' '}
			if y < len(m.cells) && x < len(m.cells[y]) {
				next[y][x] = m.cells[y][x]
			}
		}
	}
	m.rows, m.cols, m.cells = rows, cols, next
}

func (m *Memory) Size() (rows, cols int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows, m.cols
}

func (m *Memory) SetCell(row, col int, glyph rune, style Style) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 0 || col < 0 || row >= m.rows || col >= m.cols {
		return
	}
	m.cells[row][col] = Cell{Glyph: glyph, Style: style}
	m.writes++
}

func (m *Memory) Show() {
	m.mu.Lock()
	m.shows++
	m.mu.Unlock()
}

// Fini records that the surface was released. Cells stay readable.
func (m *Memory) Fini() {
	m.mu.Lock()
	m.fini++
	m.mu.Unlock()
}

// Finalized returns how many times Fini was called.
func (m *Memory) Finalized() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fini
}

// Cell returns the cell at (row, col); out-of-range cells read as blank.
func (m *Memory) Cell(row, col int) Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 0 || col < 0 || row >= m.rows || col >= m.cols {
		return Cell{Glyph: ' '}
	}
	return m.cells[row][col]
}

// Column returns the glyphs of a physical column, top to bottom.
func (m *Memory) Column(col int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var b strings.Builder
	for row := 0; row < m.rows; row++ {
		if col < 0 || col >= m.cols {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(m.cells[row][col].Glyph)
	}
	return b.String()
}

// Row returns the glyphs of a row, left to right.
func (m *Memory) Row(row int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 0 || row >= m.rows {
		return ""
	}
	var b strings.Builder
	for _, c := range m.cells[row] {
		b.WriteRune(c.Glyph)
	}
	return b.String()
}

// Writes returns the number of accepted SetCell calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Shows returns how many times Show was called.
func (m *Memory) Shows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows
}
