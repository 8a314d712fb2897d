// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/tcell.go
// Summary: Adapts a tcell.Screen to the Surface interface.
// Usage: The CLI owns the screen lifecycle; renderers only see Surface.

package surface

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Tcell adapts a tcell.Screen to the Surface interface.
type Tcell struct {
	screen tcell.Screen

	finiOnce sync.Once
}

// NewTcell wraps the provided screen. The screen must already be initialised.
func NewTcell(screen tcell.Screen) *Tcell {
	return &Tcell{screen: screen}
}

// OpenTcell creates, initialises and prepares a screen for drawing.
func OpenTcell(factory func() (tcell.Screen, error)) (*Tcell, error) {
	if factory == nil {
		factory = tcell.NewScreen
	}
	screen, err := factory()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	screen.Clear()
	screen.Show()
	return NewTcell(screen), nil
}

func (t *Tcell) Size() (rows, cols int) {
	cols, rows = t.screen.Size()
	return rows, cols
}

func (t *Tcell) SetCell(row, col int, glyph rune, style Style) {
	cols, rows := t.screen.Size()
	if row < 0 || col < 0 || row >= rows || col >= cols {
		return
	}
	t.screen.SetContent(col, row, glyph, nil, style.Tcell())
}

func (t *Tcell) Show() {
	t.screen.Show()
}

// Sync repaints the whole screen, used after a resize.
func (t *Tcell) Sync() {
	t.screen.Sync()
}

// Fini restores the terminal. Safe to call more than once.
func (t *Tcell) Fini() {
	t.finiOnce.Do(t.screen.Fini)
}

// Underlying exposes the wrapped tcell.Screen for the event pump.
func (t *Tcell) Underlying() tcell.Screen {
	return t.screen
}
