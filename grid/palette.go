// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/palette.go
// Summary: Round-robin column styles shared by the grid and the rain effect.

package grid

import (
	"sync"

	"github.com/framegrace/testrain/surface"
)

// DefaultColumnStyles is the round-robin palette for new columns and rain
// streams.
var DefaultColumnStyles = []surface.Style{
	{Color: surface.ColorBrightGreen, Attr: surface.Bold},
	{Color: surface.ColorGreen, Attr: surface.Normal},
	{Color: surface.ColorBrightGreen, Attr: surface.Normal},
}

// Palette cycles through a fixed list of styles.
type Palette struct {
	mu     sync.Mutex
	styles []surface.Style
	next   int
}

// NewPalette returns a palette over styles. An empty list yields the active
// highlight forever.
func NewPalette(styles ...surface.Style) *Palette {
	cp := append([]surface.Style(nil), styles...)
	return &Palette{styles: cp}
}

// Next returns the next style in the cycle.
func (p *Palette) Next() surface.Style {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.styles) == 0 {
		return surface.Active
	}
	st := p.styles[p.next%len(p.styles)]
	p.next = (p.next + 1) % len(p.styles)
	return st
}
